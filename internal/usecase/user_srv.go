package usecase

import (
	"context"
	"errors"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/dto/request"
	"pizza-service/internal/dto/response"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetMe(ctx context.Context, identity *utils.Identity) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, identity *utils.Identity, userID int64, req *request.UpdateUserRequest) (*response.AuthResponse, error)
	GrantRole(ctx context.Context, identity *utils.Identity, userID int64, req *request.GrantRoleRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	issuer   *sessionIssuer
	log      *zap.Logger
}

func NewUserService(repo *repository.Repository, tokens *utils.JWTManager, log *zap.Logger) UserService {
	return &userService{
		userRepo: repo.User,
		issuer:   &sessionIssuer{sessions: repo.Session, tokens: tokens},
		log:      log.With(zap.String("service", "user")),
	}
}

// GetMe echoes the identity snapshot carried by the caller's token
func (us *userService) GetMe(ctx context.Context, identity *utils.Identity) (*response.UserResponse, error) {
	if identity == nil {
		return nil, utils.NewAuthError(msgUnauthorized)
	}

	return &response.UserResponse{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
		Roles: identity.Roles,
	}, nil
}

// UpdateUser lets a user edit their own profile, or an admin edit anyone's,
// and hands back a token reflecting the new profile.
func (us *userService) UpdateUser(ctx context.Context, identity *utils.Identity, userID int64, req *request.UpdateUserRequest) (*response.AuthResponse, error) {
	if identity == nil {
		return nil, utils.NewAuthError(msgUnauthorized)
	}
	if identity.ID != userID && !identity.IsAdmin() {
		us.log.Warn("Update of another user denied",
			zap.Int64("caller_id", identity.ID),
			zap.Int64("user_id", userID))
		return nil, utils.NewForbiddenError(msgUnauthorized)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.FormatValidationErrors(errs))
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("unknown user")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return nil, utils.NewInternalError(err)
		}
		user.PasswordHash = hashed
	}

	if err := us.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, utils.NewValidationError("email already registered")
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NewNotFoundError("unknown user")
		}
		return nil, utils.NewInternalError(err)
	}

	token, err := us.issuer.issue(ctx, user)
	if err != nil {
		us.log.Error("Failed to issue token after update", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, utils.NewInternalError(err)
	}

	us.log.Info("User updated", zap.Int64("user_id", user.ID), zap.Int64("caller_id", identity.ID))
	return response.AuthToResponse(user, token), nil
}

// GrantRole adds a role assignment; it shows up in the user's next token
func (us *userService) GrantRole(ctx context.Context, identity *utils.Identity, userID int64, req *request.GrantRoleRequest) (*response.UserResponse, error) {
	if !identity.IsAdmin() {
		return nil, utils.NewForbiddenError("unable to grant role")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.FormatValidationErrors(errs))
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("unknown user")
	}

	grant := entity.RoleAssignment{Role: entity.Role(req.Role), ObjectID: req.ObjectID}
	if err := us.userRepo.AddRole(ctx, user.ID, grant); err != nil {
		return nil, utils.NewInternalError(err)
	}
	user.Roles = user.Roles.With(grant)

	us.log.Info("Role granted",
		zap.Int64("user_id", user.ID),
		zap.String("role", req.Role),
		zap.Int64("object_id", req.ObjectID),
		zap.Int64("granted_by", identity.ID))

	resp := response.UserToResponse(user)
	return &resp, nil
}
