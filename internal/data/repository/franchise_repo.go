package repository

import (
	"context"
	"errors"
	"fmt"

	"pizza-service/internal/data/entity"
	"pizza-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FranchiseRepository interface {
	Create(ctx context.Context, franchise *entity.Franchise) error
	FindByID(ctx context.Context, id int64) (*entity.Franchise, error)
	// FindAll matches name with SQL LIKE semantics, ordered by id
	FindAll(ctx context.Context, nameLike string, limit, offset int) ([]*entity.Franchise, error)
	FindByAdmin(ctx context.Context, userID int64) ([]*entity.Franchise, error)
	Delete(ctx context.Context, id int64) error
}

type franchiseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFranchiseRepository(db database.PgxIface, log *zap.Logger) FranchiseRepository {
	return &franchiseRepository{
		db:  db,
		log: log.With(zap.String("repository", "franchise")),
	}
}

// Create stores the franchise and grants each admin the franchisee role
// scoped to the new id, atomically. A taken name surfaces as ErrDuplicate.
func (r *franchiseRepository) Create(ctx context.Context, franchise *entity.Franchise) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO franchises (name) VALUES ($1) RETURNING id`
		if err := tx.QueryRow(ctx, query, franchise.Name).Scan(&franchise.ID); err != nil {
			return err
		}

		for _, admin := range franchise.Admins {
			grant := entity.RoleAssignment{Role: entity.RoleFranchisee, ObjectID: franchise.ID}
			if err := insertRole(ctx, tx, admin.ID, grant); err != nil {
				return err
			}
		}
		return nil
	})

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create franchise",
			zap.Error(err),
			zap.String("name", franchise.Name),
		)
		return fmt.Errorf("create franchise %s: %w", franchise.Name, err)
	}

	return nil
}

func (r *franchiseRepository) FindByID(ctx context.Context, id int64) (*entity.Franchise, error) {
	query := `SELECT id, name FROM franchises WHERE id = $1`

	var franchise entity.Franchise
	err := r.db.QueryRow(ctx, query, id).Scan(&franchise.ID, &franchise.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find franchise by ID",
			zap.Error(err),
			zap.Int64("franchise_id", id),
		)
		return nil, fmt.Errorf("find franchise by ID %d: %w", id, err)
	}

	franchises := []*entity.Franchise{&franchise}
	if err := r.loadDetails(ctx, franchises); err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (r *franchiseRepository) FindAll(ctx context.Context, nameLike string, limit, offset int) ([]*entity.Franchise, error) {
	query := `
		SELECT id, name
		FROM franchises
		WHERE name LIKE $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	franchises, err := r.query(ctx, query, nameLike, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all franchises",
			zap.Error(err),
			zap.String("name", nameLike),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all franchises limit %d offset %d: %w", limit, offset, err)
	}

	if err := r.loadDetails(ctx, franchises); err != nil {
		return nil, err
	}
	return franchises, nil
}

func (r *franchiseRepository) FindByAdmin(ctx context.Context, userID int64) ([]*entity.Franchise, error) {
	query := `
		SELECT f.id, f.name
		FROM franchises f
		JOIN user_roles ur ON ur.object_id = f.id AND ur.role = $2
		WHERE ur.user_id = $1
		ORDER BY f.id
	`

	franchises, err := r.query(ctx, query, userID, entity.RoleFranchisee)
	if err != nil {
		r.log.Error("Failed to find franchises by admin",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find franchises for admin %d: %w", userID, err)
	}

	if err := r.loadDetails(ctx, franchises); err != nil {
		return nil, err
	}
	return franchises, nil
}

// Delete removes the franchise, its stores, and every role grant scoped to them
func (r *franchiseRepository) Delete(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM user_roles
			WHERE role = $1 AND object_id IN (SELECT id FROM stores WHERE franchise_id = $2)
		`, entity.RoleStoreAdmin, id); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM user_roles WHERE role = $1 AND object_id = $2
		`, entity.RoleFranchisee, id); err != nil {
			return err
		}

		// stores go with the franchise via ON DELETE CASCADE
		result, err := tx.Exec(ctx, `DELETE FROM franchises WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})

	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to delete franchise",
			zap.Error(err),
			zap.Int64("franchise_id", id),
		)
		return fmt.Errorf("delete franchise %d: %w", id, err)
	}

	r.log.Info("Franchise deleted", zap.Int64("franchise_id", id))
	return nil
}

func (r *franchiseRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Franchise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	franchises := []*entity.Franchise{}
	for rows.Next() {
		var franchise entity.Franchise
		if err := rows.Scan(&franchise.ID, &franchise.Name); err != nil {
			return nil, fmt.Errorf("scan franchise row: %w", err)
		}
		franchises = append(franchises, &franchise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate franchise rows: %w", err)
	}

	return franchises, nil
}

// loadDetails fills admins and stores for all franchises with one query each
func (r *franchiseRepository) loadDetails(ctx context.Context, franchises []*entity.Franchise) error {
	if len(franchises) == 0 {
		return nil
	}

	ids := make([]int64, len(franchises))
	byID := make(map[int64]*entity.Franchise, len(franchises))
	for i, f := range franchises {
		ids[i] = f.ID
		f.Admins = []*entity.FranchiseAdmin{}
		f.Stores = []*entity.Store{}
		byID[f.ID] = f
	}

	adminRows, err := r.db.Query(ctx, `
		SELECT ur.object_id, u.id, u.name, u.email
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
		WHERE ur.role = $1 AND ur.object_id = ANY($2)
		ORDER BY ur.id
	`, entity.RoleFranchisee, ids)
	if err != nil {
		r.log.Error("Failed to load franchise admins", zap.Error(err))
		return fmt.Errorf("load franchise admins: %w", err)
	}
	defer adminRows.Close()

	for adminRows.Next() {
		var franchiseID int64
		var admin entity.FranchiseAdmin
		if err := adminRows.Scan(&franchiseID, &admin.ID, &admin.Name, &admin.Email); err != nil {
			return fmt.Errorf("scan franchise admin row: %w", err)
		}
		byID[franchiseID].Admins = append(byID[franchiseID].Admins, &admin)
	}
	if err := adminRows.Err(); err != nil {
		return fmt.Errorf("iterate franchise admin rows: %w", err)
	}

	storeRows, err := r.db.Query(ctx, `
		SELECT id, franchise_id, name
		FROM stores
		WHERE franchise_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		r.log.Error("Failed to load franchise stores", zap.Error(err))
		return fmt.Errorf("load franchise stores: %w", err)
	}
	defer storeRows.Close()

	for storeRows.Next() {
		var store entity.Store
		if err := storeRows.Scan(&store.ID, &store.FranchiseID, &store.Name); err != nil {
			return fmt.Errorf("scan store row: %w", err)
		}
		byID[store.FranchiseID].Stores = append(byID[store.FranchiseID].Stores, &store)
	}
	if err := storeRows.Err(); err != nil {
		return fmt.Errorf("iterate store rows: %w", err)
	}

	return nil
}
