package usecase

import (
	"pizza-service/internal/data/repository"
	"pizza-service/internal/factory"
	"pizza-service/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Franchise FranchiseService
	Order     OrderService
}

func NewService(
	repo *repository.Repository,
	tokens *utils.JWTManager,
	factoryClient factory.Client,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, tokens, log),
		User:      NewUserService(repo, tokens, log),
		Franchise: NewFranchiseService(repo, log),
		Order:     NewOrderService(repo, factoryClient, log),
	}
}
