package adaptor

import (
	"net/http"

	"pizza-service/internal/dto/request"
	"pizza-service/internal/usecase"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// GetMenu handles GET /api/order/menu
func (h *OrderHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.GetMenu(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get menu")
		return
	}

	utils.ResponseSuccess(w, menu)
}

// AddMenuItem handles PUT /api/order/menu (admin only)
func (h *OrderHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var req request.MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	menu, err := h.service.AddMenuItem(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add menu item")
		return
	}

	utils.ResponseSuccess(w, menu)
}

// ListOrders handles GET /api/order?page=
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	// the page size is fixed; only the page number is caller controlled
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: 10,
	}

	identity, _ := utils.GetIdentity(r.Context())
	orders, err := h.service.ListOrders(r.Context(), identity, req)
	if err != nil {
		handleServiceError(h.log, w, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, orders)
}

// CreateOrder handles POST /api/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody)
		return
	}

	identity, _ := utils.GetIdentity(r.Context())
	resp, err := h.service.CreateOrder(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create order")
		return
	}

	utils.ResponseSuccess(w, resp)
}
