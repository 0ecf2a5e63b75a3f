package usecase

import (
	"context"
	"errors"
	"fmt"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

// SeedAdmin creates the configured global admin unless that email already
// exists. It is a no-op when no admin email or password is configured.
func SeedAdmin(ctx context.Context, users repository.UserRepository, cfg utils.AdminConfig, log *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Debug("Admin seed skipped, no credentials configured")
		return nil
	}

	existing, err := users.FindByEmail(ctx, cfg.Email)
	if err != nil {
		return fmt.Errorf("look up admin %s: %w", cfg.Email, err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: hashed,
		Roles:        entity.NewRoleSet(entity.RoleAssignment{Role: entity.RoleAdmin}),
	}
	if err := users.Create(ctx, admin); err != nil {
		// another instance won the race
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("create admin %s: %w", cfg.Email, err)
	}

	log.Info("Admin user seeded", zap.Int64("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
