package response

import (
	"time"

	"pizza-service/internal/data/entity"

	"github.com/shopspring/decimal"
)

type MenuItemResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

type OrderItemResponse struct {
	ID          int64           `json:"id"`
	MenuID      int64           `json:"menuId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID          int64               `json:"id"`
	FranchiseID int64               `json:"franchiseId"`
	StoreID     int64               `json:"storeId"`
	Status      entity.OrderStatus  `json:"status"`
	Date        time.Time           `json:"date"`
	Items       []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	DinerID int64           `json:"dinerId"`
	Orders  []OrderResponse `json:"orders"`
	Page    int             `json:"page"`
}

// CreateOrderResponse carries the factory's fulfillment token and report link
type CreateOrderResponse struct {
	Order     OrderResponse `json:"order"`
	JWT       string        `json:"jwt"`
	ReportURL string        `json:"followLinkToEndChaos"`
}

func MenuItemToResponse(item *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Image:       item.Image,
		Price:       item.Price,
	}
}

func MenuToResponse(items []*entity.MenuItem) []MenuItemResponse {
	resp := make([]MenuItemResponse, len(items))
	for i, item := range items {
		resp[i] = MenuItemToResponse(item)
	}
	return resp
}

func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		Status:      order.Status,
		Date:        order.CreatedAt,
		Items:       make([]OrderItemResponse, len(order.Items)),
	}

	for i, item := range order.Items {
		resp.Items[i] = OrderItemResponse{
			ID:          item.ID,
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		}
	}

	return resp
}
