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

type OrderRepository interface {
	// Create persists the order and its items atomically
	Create(ctx context.Context, order *entity.Order) error
	FindByDinerID(ctx context.Context, dinerID int64, limit, offset int) ([]*entity.Order, error)
	// UpdateFulfillment stores status, fulfillment token and report reference
	UpdateFulfillment(ctx context.Context, order *entity.Order) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO orders (diner_id, franchise_id, store_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		if err := tx.QueryRow(ctx, query,
			order.DinerID,
			order.FranchiseID,
			order.StoreID,
			order.Status,
		).Scan(&order.ID, &order.CreatedAt); err != nil {
			return err
		}

		for _, item := range order.Items {
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, menu_id, description, price)
				VALUES ($1, $2, $3, $4::numeric)
				RETURNING id
			`, item.OrderID, item.MenuID, item.Description, item.Price.String()).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.Int64("diner_id", order.DinerID),
			zap.Int("item_count", len(order.Items)),
		)
		return fmt.Errorf("create order for diner %d: %w", order.DinerID, err)
	}

	return nil
}

func (r *orderRepository) FindByDinerID(ctx context.Context, dinerID int64, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, diner_id, franchise_id, store_id, status, fulfillment_jwt, report_url, created_at
		FROM orders
		WHERE diner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, dinerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders by diner",
			zap.Error(err),
			zap.Int64("diner_id", dinerID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find orders for diner %d: %w", dinerID, err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	byID := make(map[int64]*entity.Order)
	var ids []int64
	for rows.Next() {
		var order entity.Order
		if err := rows.Scan(
			&order.ID,
			&order.DinerID,
			&order.FranchiseID,
			&order.StoreID,
			&order.Status,
			&order.FulfillmentJWT,
			&order.ReportURL,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Items = []*entity.OrderItem{}
		orders = append(orders, &order)
		byID[order.ID] = &order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	if err := r.loadItems(ctx, ids, byID); err != nil {
		r.log.Error("Failed to load order items", zap.Error(err), zap.Int64("diner_id", dinerID))
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, ids []int64, byID map[int64]*entity.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, menu_id, description, price::text
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("find order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		var price string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.Description, &price); err != nil {
			return fmt.Errorf("scan order item row: %w", err)
		}
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("parse order item price %q: %w", price, err)
		}
		item.Price = parsed
		byID[item.OrderID].Items = append(byID[item.OrderID].Items, &item)
	}
	return rows.Err()
}

func (r *orderRepository) UpdateFulfillment(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, fulfillment_jwt = $3, report_url = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		order.ID,
		order.Status,
		order.FulfillmentJWT,
		order.ReportURL,
	)
	if err != nil {
		r.log.Error("Failed to update order fulfillment",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
			zap.String("status", string(order.Status)),
		)
		return fmt.Errorf("update order %d: %w", order.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update order %d: %w", order.ID, ErrNotFound)
	}

	return nil
}

