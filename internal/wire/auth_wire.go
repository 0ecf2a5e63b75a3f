package wire

import (
	"pizza-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth authChain) {
	// register and login are public
	r.Post("/api/auth", authHandler.Register)
	r.Put("/api/auth", authHandler.Login)

	r.With(auth.required()).Delete("/api/auth", authHandler.Logout)
}
