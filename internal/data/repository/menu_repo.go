package repository

import (
	"context"
	"fmt"

	"pizza-service/internal/data/entity"
	"pizza-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MenuRepository interface {
	FindAll(ctx context.Context) ([]*entity.MenuItem, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*entity.MenuItem, error)
	Create(ctx context.Context, item *entity.MenuItem) error
}

type menuRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMenuRepository(db database.PgxIface, log *zap.Logger) MenuRepository {
	return &menuRepository{
		db:  db,
		log: log.With(zap.String("repository", "menu")),
	}
}

// price is read as text so NUMERIC precision survives into decimal.Decimal
const menuColumns = `id, title, description, image, price::text`

func (r *menuRepository) FindAll(ctx context.Context) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get menu", zap.Error(err))
		return nil, fmt.Errorf("find menu: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

func (r *menuRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*entity.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find menu items", zap.Error(err), zap.Int64s("ids", ids))
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	defer rows.Close()

	items, err := scanMenuItems(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*entity.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (title, description, image, price)
		VALUES ($1, $2, $3, $4::numeric)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.Image,
		item.Price.String(),
	).Scan(&item.ID)

	if err != nil {
		r.log.Error("Failed to create menu item",
			zap.Error(err),
			zap.String("title", item.Title),
		)
		return fmt.Errorf("create menu item %s: %w", item.Title, err)
	}

	return nil
}

func scanMenuItems(rows pgx.Rows) ([]*entity.MenuItem, error) {
	items := []*entity.MenuItem{}
	for rows.Next() {
		var item entity.MenuItem
		var price string
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &price); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}

		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse menu price %q: %w", price, err)
		}
		item.Price = parsed
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu rows: %w", err)
	}
	return items, nil
}
