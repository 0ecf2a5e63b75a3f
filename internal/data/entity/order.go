package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated              OrderStatus = "created"
	OrderStatusFulfillmentRequested OrderStatus = "fulfillment_requested"
	OrderStatusFulfilled            OrderStatus = "fulfilled"
	OrderStatusFulfillmentFailed    OrderStatus = "fulfillment_failed"
)

type orderTransition struct {
	From OrderStatus
	To   OrderStatus
}

var orderTransitions = map[orderTransition]bool{
	{OrderStatusCreated, OrderStatusFulfillmentRequested}:           true,
	{OrderStatusFulfillmentRequested, OrderStatusFulfilled}:         true,
	{OrderStatusFulfillmentRequested, OrderStatusFulfillmentFailed}: true,
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return orderTransitions[orderTransition{From: from, To: to}]
}

type Order struct {
	ID             int64       `db:"id"`
	DinerID        int64       `db:"diner_id"`
	FranchiseID    int64       `db:"franchise_id"`
	StoreID        int64       `db:"store_id"`
	Status         OrderStatus `db:"status"`
	FulfillmentJWT *string     `db:"fulfillment_jwt"`
	ReportURL      *string     `db:"report_url"`
	CreatedAt      time.Time   `db:"created_at"`
	Items          []*OrderItem
}

type OrderItem struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	MenuID      int64           `db:"menu_id"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
}

// TransitionTo moves the order to next, rejecting moves the state machine forbids.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !CanTransition(o.Status, next) {
		return fmt.Errorf("invalid order transition %s -> %s", o.Status, next)
	}
	o.Status = next
	return nil
}
