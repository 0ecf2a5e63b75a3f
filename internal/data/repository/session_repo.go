package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizza-service/internal/data/entity"
	"pizza-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionRepository is the registry of issued tokens. A token is usable only
// while its record exists with revoked_at unset.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, tokenID uuid.UUID) (*entity.Session, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	CleanRevokedSessions(ctx context.Context, revokedBefore time.Time) (int64, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO auth_sessions (jti, user_id, user_agent, ip_address, issued_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		session.TokenID,
		session.UserID,
		session.UserAgent,
		session.IPAddress,
		session.IssuedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", session.UserID),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, tokenID uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT jti, user_id, user_agent, ip_address, issued_at, revoked_at
		FROM auth_sessions
		WHERE jti = $1
		  AND revoked_at IS NULL
	`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, tokenID).Scan(
		&session.TokenID,
		&session.UserID,
		&session.UserAgent,
		&session.IPAddress,
		&session.IssuedAt,
		&session.RevokedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session",
			zap.Error(err),
			zap.String("jti", tokenID.String()),
		)
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &session, nil
}

// Revoke marks the session revoked; ErrNotFound if it was already gone
func (r *sessionRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE jti = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, tokenID)
	if err != nil {
		r.log.Error("Failed to revoke session",
			zap.Error(err),
			zap.String("jti", tokenID.String()),
		)
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *sessionRepository) CleanRevokedSessions(ctx context.Context, revokedBefore time.Time) (int64, error) {
	query := `
		DELETE FROM auth_sessions
		WHERE revoked_at IS NOT NULL AND revoked_at < $1
	`

	result, err := r.db.Exec(ctx, query, revokedBefore)
	if err != nil {
		r.log.Error("Failed to clean revoked sessions",
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to clean sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
