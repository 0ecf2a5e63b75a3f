package request

import "github.com/shopspring/decimal"

type MenuItemRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Image       string           `json:"image" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required,price"`
}

type OrderItemRequest struct {
	MenuID      int64           `json:"menuId" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"price"`
}

type CreateOrderRequest struct {
	FranchiseID int64              `json:"franchiseId" validate:"required,gt=0"`
	StoreID     int64              `json:"storeId" validate:"required,gt=0"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}
