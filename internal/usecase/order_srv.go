package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/dto/request"
	"pizza-service/internal/dto/response"
	"pizza-service/internal/factory"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgFulfillmentFailed = "Failed to fulfill order at factory"
	detailReportURL      = "followLinkToEndChaos"

	// bounds the status write that follows the factory call
	recordTimeout = 5 * time.Second
)

type OrderService interface {
	GetMenu(ctx context.Context) ([]response.MenuItemResponse, error)
	AddMenuItem(ctx context.Context, identity *utils.Identity, req *request.MenuItemRequest) ([]response.MenuItemResponse, error)
	ListOrders(ctx context.Context, identity *utils.Identity, req *request.PaginatedRequest) (*response.OrderListResponse, error)
	CreateOrder(ctx context.Context, identity *utils.Identity, req *request.CreateOrderRequest) (*response.CreateOrderResponse, error)
}

type orderService struct {
	repo    *repository.Repository
	factory factory.Client
	log     *zap.Logger
}

func NewOrderService(repo *repository.Repository, factoryClient factory.Client, log *zap.Logger) OrderService {
	return &orderService{
		repo:    repo,
		factory: factoryClient,
		log:     log.With(zap.String("service", "order")),
	}
}

func (s *orderService) GetMenu(ctx context.Context) ([]response.MenuItemResponse, error) {
	items, err := s.repo.Menu.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load menu", zap.Error(err))
		return nil, utils.NewInternalError(err)
	}
	return response.MenuToResponse(items), nil
}

func (s *orderService) AddMenuItem(ctx context.Context, identity *utils.Identity, req *request.MenuItemRequest) ([]response.MenuItemResponse, error) {
	if !identity.IsAdmin() {
		return nil, utils.NewForbiddenError("unable to add menu item")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Menu item validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(utils.FormatValidationErrors(errs))
	}

	item := &entity.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       *req.Price,
	}
	if err := s.repo.Menu.Create(ctx, item); err != nil {
		return nil, utils.NewInternalError(err)
	}

	s.log.Info("Menu item added",
		zap.Int64("menu_id", item.ID),
		zap.String("title", item.Title),
		zap.String("price", item.Price.String()),
	)

	return s.GetMenu(ctx)
}

// ListOrders pages through the caller's own orders, oldest first.
func (s *orderService) ListOrders(ctx context.Context, identity *utils.Identity, req *request.PaginatedRequest) (*response.OrderListResponse, error) {
	if identity == nil {
		return nil, utils.NewAuthError(msgUnauthorized)
	}

	orders, err := s.repo.Order.FindByDinerID(ctx, identity.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err), zap.Int64("diner_id", identity.ID))
		return nil, utils.NewInternalError(err)
	}

	resp := &response.OrderListResponse{
		DinerID: identity.ID,
		Orders:  make([]response.OrderResponse, len(orders)),
		Page:    req.CurrentPage(),
	}
	for i, order := range orders {
		resp.Orders[i] = response.OrderToResponse(order)
	}
	return resp, nil
}

// CreateOrder persists the order before calling the factory, so a failed
// fulfillment still leaves a durable record in fulfillment_failed.
func (s *orderService) CreateOrder(ctx context.Context, identity *utils.Identity, req *request.CreateOrderRequest) (*response.CreateOrderResponse, error) {
	if identity == nil {
		return nil, utils.NewAuthError(msgUnauthorized)
	}

	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs), zap.Int64("diner_id", identity.ID))
		return nil, utils.NewValidationError(utils.FormatValidationErrors(errs))
	}

	// 2. Every item must reference a known menu entry
	menuIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		menuIDs = append(menuIDs, item.MenuID)
	}
	known, err := s.repo.Menu.FindByIDs(ctx, menuIDs)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	for _, id := range menuIDs {
		if _, ok := known[id]; !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("unknown menu item %d", id))
		}
	}

	// 3. Store must exist under the given franchise
	store, err := s.repo.Store.FindByID(ctx, req.StoreID)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	if store == nil || store.FranchiseID != req.FranchiseID {
		return nil, utils.NewNotFoundError("unknown store")
	}

	// 4. Persist
	order := &entity.Order{
		DinerID:     identity.ID,
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Status:      entity.OrderStatusCreated,
		Items:       make([]*entity.OrderItem, len(req.Items)),
	}
	for i, item := range req.Items {
		order.Items[i] = &entity.OrderItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		}
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, utils.NewInternalError(err)
	}

	if err := s.advance(ctx, order, entity.OrderStatusFulfillmentRequested); err != nil {
		return nil, utils.NewInternalError(err)
	}

	// 5. Hand off to the factory
	orderResp := response.OrderToResponse(order)
	result, err := s.factory.Fulfill(ctx, identity.Token, &factory.FulfillmentRequest{
		Diner: factory.Diner{ID: identity.ID, Name: identity.Name, Email: identity.Email},
		Order: orderResp,
	})
	if err != nil {
		return nil, s.fulfillmentFailed(ctx, order, err)
	}

	order.FulfillmentJWT = &result.JWT
	order.ReportURL = &result.ReportURL
	if err := s.record(ctx, order, entity.OrderStatusFulfilled); err != nil {
		// the factory has already accepted the order; report success anyway
		s.log.Error("Failed to record fulfillment",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
	}

	s.log.Info("Order fulfilled",
		zap.Int64("order_id", order.ID),
		zap.Int64("diner_id", identity.ID),
		zap.Int("item_count", len(order.Items)),
	)

	orderResp.Status = order.Status
	return &response.CreateOrderResponse{
		Order:     orderResp,
		JWT:       result.JWT,
		ReportURL: result.ReportURL,
	}, nil
}

func (s *orderService) fulfillmentFailed(ctx context.Context, order *entity.Order, cause error) error {
	var reportURL string
	var rejected *factory.RejectedError
	if errors.As(cause, &rejected) {
		reportURL = rejected.ReportURL
	}
	if reportURL != "" {
		order.ReportURL = &reportURL
	}

	if err := s.record(ctx, order, entity.OrderStatusFulfillmentFailed); err != nil {
		s.log.Error("Failed to record fulfillment failure",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
	}

	s.log.Warn("Factory fulfillment failed",
		zap.Error(cause),
		zap.Int64("order_id", order.ID),
		zap.String("report_url", reportURL),
	)

	return utils.NewFulfillmentError(msgFulfillmentFailed, map[string]any{detailReportURL: reportURL}, cause)
}

func (s *orderService) advance(ctx context.Context, order *entity.Order, next entity.OrderStatus) error {
	if err := order.TransitionTo(next); err != nil {
		return err
	}
	return s.repo.Order.UpdateFulfillment(ctx, order)
}

// record writes the factory outcome even when the caller has gone away, so
// the order never stays in fulfillment_requested.
func (s *orderService) record(ctx context.Context, order *entity.Order, next entity.OrderStatus) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	return s.advance(ctx, order, next)
}
