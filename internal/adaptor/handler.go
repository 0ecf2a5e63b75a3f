package adaptor

import (
	"pizza-service/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Franchise *FranchiseHandler
	Order     *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Franchise: NewFranchiseHandler(service.Franchise, log),
		Order:     NewOrderHandler(service.Order, log),
	}
}
