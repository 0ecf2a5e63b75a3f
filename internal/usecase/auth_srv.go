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

const (
	msgRegisterRequired = "name, email, and password are required"
	msgLoginRequired    = "email and password are required"
	msgBadCredentials   = "invalid credentials"
	msgUnauthorized     = "unauthorized"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, identity *utils.Identity) error
}

type authService struct {
	repo   *repository.Repository // user + session registry
	issuer *sessionIssuer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *utils.JWTManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		issuer: &sessionIssuer{sessions: repo.Session, tokens: tokens},
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(msgRegisterRequired)
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, utils.NewInternalError(err)
	}

	// 3. Save user; the unique index on email decides concurrent registrations
	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Roles:        entity.NewRoleSet(entity.RoleAssignment{Role: entity.RoleDiner}),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("Register with taken email", zap.String("email", req.Email))
			return nil, utils.NewValidationError("email already registered")
		}
		return nil, utils.NewInternalError(err)
	}

	// 4. Log straight in
	token, err := s.issuer.issue(ctx, user)
	if err != nil {
		s.log.Error("Failed to create session after register",
			zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, utils.NewInternalError(err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	return response.AuthToResponse(user, token), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(msgLoginRequired)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, utils.NewAuthError(msgBadCredentials)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, utils.NewAuthError(msgBadCredentials)
	}

	// roles are snapshotted into the token here; later grants need a new login
	token, err := s.issuer.issue(ctx, user)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, utils.NewInternalError(err)
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return response.AuthToResponse(user, token), nil
}

func (s *authService) Logout(ctx context.Context, identity *utils.Identity) error {
	if identity == nil {
		return utils.NewAuthError(msgUnauthorized)
	}

	if err := s.repo.Session.Revoke(ctx, identity.TokenID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewAuthError(msgUnauthorized)
		}
		return utils.NewInternalError(err)
	}

	s.log.Info("User logged out",
		zap.Int64("user_id", identity.ID),
		zap.String("jti", identity.TokenID.String()))
	return nil
}
