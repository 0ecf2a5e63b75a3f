package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/dto/request"
	"pizza-service/internal/dto/response"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultFranchiseLimit = 10
	maxFranchiseLimit     = 100
)

type FranchiseService interface {
	ListFranchises(ctx context.Context, identity *utils.Identity, req *request.FranchiseListRequest) (*response.FranchiseListResponse, error)
	ListUserFranchises(ctx context.Context, identity *utils.Identity, userID int64) ([]response.FranchiseResponse, error)
	CreateFranchise(ctx context.Context, identity *utils.Identity, req *request.CreateFranchiseRequest) (*response.FranchiseResponse, error)
	DeleteFranchise(ctx context.Context, identity *utils.Identity, franchiseID int64) error
	CreateStore(ctx context.Context, identity *utils.Identity, franchiseID int64, req *request.CreateStoreRequest) (*response.StoreResponse, error)
	DeleteStore(ctx context.Context, identity *utils.Identity, franchiseID, storeID int64) error
}

type franchiseService struct {
	repo *repository.Repository // franchise, store and user lookups
	log  *zap.Logger
}

func NewFranchiseService(repo *repository.Repository, log *zap.Logger) FranchiseService {
	return &franchiseService{
		repo: repo,
		log:  log.With(zap.String("service", "franchise")),
	}
}

// ListFranchises is public. Admins additionally see each franchise's admins.
func (s *franchiseService) ListFranchises(ctx context.Context, identity *utils.Identity, req *request.FranchiseListRequest) (*response.FranchiseListResponse, error) {
	limit := req.Limit
	if limit < 1 {
		limit = defaultFranchiseLimit
	}
	if limit > maxFranchiseLimit {
		limit = maxFranchiseLimit
	}

	name := req.Name
	if name == "" {
		name = "*"
	}
	nameLike := strings.ReplaceAll(name, "*", "%")

	// one extra row tells us whether another page exists
	franchises, err := s.repo.Franchise.FindAll(ctx, nameLike, limit+1, utils.CalculateOffset(req.Page, limit))
	if err != nil {
		s.log.Error("Failed to list franchises",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", limit),
			zap.String("name", name),
		)
		return nil, utils.NewInternalError(err)
	}

	more := len(franchises) > limit
	if more {
		franchises = franchises[:limit]
	}

	withAdmins := identity.IsAdmin()
	resp := &response.FranchiseListResponse{
		Franchises: make([]response.FranchiseResponse, len(franchises)),
		More:       more,
	}
	for i, f := range franchises {
		resp.Franchises[i] = response.FranchiseToResponse(f, withAdmins)
	}

	return resp, nil
}

// ListUserFranchises returns the franchises userID administers. Callers who are
// neither that user nor a global admin get an empty list rather than an error.
func (s *franchiseService) ListUserFranchises(ctx context.Context, identity *utils.Identity, userID int64) ([]response.FranchiseResponse, error) {
	result := []response.FranchiseResponse{}
	if identity == nil || (identity.ID != userID && !identity.IsAdmin()) {
		return result, nil
	}

	franchises, err := s.repo.Franchise.FindByAdmin(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list user franchises", zap.Error(err), zap.Int64("user_id", userID))
		return nil, utils.NewInternalError(err)
	}

	for _, f := range franchises {
		result = append(result, response.FranchiseToResponse(f, true))
	}
	return result, nil
}

func (s *franchiseService) CreateFranchise(ctx context.Context, identity *utils.Identity, req *request.CreateFranchiseRequest) (*response.FranchiseResponse, error) {
	// 1. Only global admins
	if !identity.IsAdmin() {
		return nil, utils.NewForbiddenError("unable to create a franchise")
	}

	// 2. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create franchise validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(utils.FormatValidationErrors(errs))
	}

	// 3. Resolve admin emails to users
	franchise := &entity.Franchise{
		Name:   req.Name,
		Admins: make([]*entity.FranchiseAdmin, 0, len(req.Admins)),
		Stores: []*entity.Store{},
	}
	seen := make(map[int64]bool, len(req.Admins))
	for _, admin := range req.Admins {
		user, err := s.repo.User.FindByEmail(ctx, admin.Email)
		if err != nil {
			return nil, utils.NewInternalError(err)
		}
		if user == nil {
			return nil, utils.NewValidationError(fmt.Sprintf("unknown user for franchise admin %s provided", admin.Email))
		}
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		franchise.Admins = append(franchise.Admins, &entity.FranchiseAdmin{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}

	// 4. Persist franchise + scoped grants
	if err := s.repo.Franchise.Create(ctx, franchise); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewValidationError("franchise name already exists")
		}
		return nil, utils.NewInternalError(err)
	}

	s.log.Info("Franchise created",
		zap.Int64("franchise_id", franchise.ID),
		zap.String("name", franchise.Name),
		zap.Int("admin_count", len(franchise.Admins)),
	)

	resp := response.FranchiseToResponse(franchise, true)
	return &resp, nil
}

// DeleteFranchise reports 404 for an unknown id so callers can tell a typo
// from a completed delete.
func (s *franchiseService) DeleteFranchise(ctx context.Context, identity *utils.Identity, franchiseID int64) error {
	if !identity.IsAdmin() {
		return utils.NewForbiddenError("unable to delete a franchise")
	}

	if err := s.repo.Franchise.Delete(ctx, franchiseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError("franchise not found")
		}
		return utils.NewInternalError(err)
	}

	return nil
}

func (s *franchiseService) CreateStore(ctx context.Context, identity *utils.Identity, franchiseID int64, req *request.CreateStoreRequest) (*response.StoreResponse, error) {
	if identity == nil || !identity.Roles.CanManageFranchise(franchiseID) {
		return nil, utils.NewForbiddenError("unable to create a store")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.FormatValidationErrors(errs))
	}

	franchise, err := s.repo.Franchise.FindByID(ctx, franchiseID)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	if franchise == nil {
		return nil, utils.NewNotFoundError("franchise not found")
	}

	store := &entity.Store{FranchiseID: franchise.ID, Name: req.Name}
	if err := s.repo.Store.Create(ctx, store); err != nil {
		return nil, utils.NewInternalError(err)
	}

	s.log.Info("Store created",
		zap.Int64("franchise_id", franchise.ID),
		zap.Int64("store_id", store.ID),
		zap.Int64("created_by", identity.ID),
	)

	resp := response.StoreToResponse(store)
	return &resp, nil
}

func (s *franchiseService) DeleteStore(ctx context.Context, identity *utils.Identity, franchiseID, storeID int64) error {
	if identity == nil || !identity.Roles.CanManageFranchise(franchiseID) {
		return utils.NewForbiddenError("unable to delete a store")
	}

	if err := s.repo.Store.Delete(ctx, franchiseID, storeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError("store not found")
		}
		return utils.NewInternalError(err)
	}

	s.log.Info("Store deleted",
		zap.Int64("franchise_id", franchiseID),
		zap.Int64("store_id", storeID),
		zap.Int64("deleted_by", identity.ID),
	)
	return nil
}
