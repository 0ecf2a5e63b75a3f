package repository

import (
	"context"
	"errors"

	"pizza-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned by mutations that matched no row
	ErrNotFound = errors.New("record not found")
)

const uniqueViolation = "23505"

// querier is satisfied by both the pool and an open transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Franchise FranchiseRepository
	Store     StoreRepository
	Menu      MenuRepository
	Order     OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Franchise: NewFranchiseRepository(db, log),
		Store:     NewStoreRepository(db, log),
		Menu:      NewMenuRepository(db, log),
		Order:     NewOrderRepository(db, log),
	}
}
