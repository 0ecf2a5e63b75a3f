package wire

import (
	"net/http"

	"pizza-service/internal/adaptor"
	"pizza-service/internal/data/repository"
	"pizza-service/internal/factory"
	"pizza-service/internal/usecase"
	"pizza-service/pkg/middleware"
	"pizza-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// authChain bundles the token verifier and session registry every protected
// route group needs.
type authChain struct {
	tokens   *utils.JWTManager
	sessions repository.SessionRepository
	log      *zap.Logger
}

func (a authChain) required() func(http.Handler) http.Handler {
	return middleware.AuthSession(a.tokens, a.sessions, a.log)
}

func (a authChain) optional() func(http.Handler) http.Handler {
	return middleware.OptionalAuth(a.tokens, a.sessions, a.log)
}

func (a authChain) admin(message string) func(http.Handler) http.Handler {
	return middleware.Admin(message, a.log)
}

// Wiring builds services, handlers and routes from the repositories and config
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewJWTManager(config.JWT.Secret)
	factoryClient := factory.NewClient(config.Factory.URL, config.Factory.Timeout, logger)

	service := usecase.NewService(repo, tokens, factoryClient, logger)
	handler := adaptor.NewHandler(service, logger)

	auth := authChain{tokens: tokens, sessions: repo.Session, log: logger}
	router := setupRouter(handler, auth, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	auth authChain,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.ClientInfo)

	// Apply routes
	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth)
	wireFranchise(r, handler.Franchise, auth)
	wireOrder(r, handler.Order, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusNotFound, utils.MessageResponse{Message: "unknown endpoint"})
	})

	return r
}
