package wire

import (
	"pizza-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth authChain) {
	r.Route("/api/user", func(r chi.Router) {
		r.Use(auth.required())

		r.Get("/me", userHandler.GetMe)
		r.Put("/{userId}", userHandler.UpdateUser)

		// role changes are an explicit admin action
		r.With(auth.admin("unable to grant role")).Post("/{userId}/role", userHandler.GrantRole)
	})
}
