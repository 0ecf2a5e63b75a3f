package wire

import (
	"pizza-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFranchise(r chi.Router, franchiseHandler *adaptor.FranchiseHandler, auth authChain) {
	r.Route("/api/franchise", func(r chi.Router) {
		// listing is public; admins additionally see franchise admins
		r.With(auth.optional()).Get("/", franchiseHandler.ListFranchises)

		r.Group(func(r chi.Router) {
			r.Use(auth.required())

			r.Get("/{userId}", franchiseHandler.ListUserFranchises)
			r.Post("/", franchiseHandler.CreateFranchise)
			r.Delete("/{franchiseId}", franchiseHandler.DeleteFranchise)

			// admins or the franchise's own franchisees, checked in the service
			r.Post("/{franchiseId}/store", franchiseHandler.CreateStore)
			r.Delete("/{franchiseId}/store/{storeId}", franchiseHandler.DeleteStore)
		})
	})
}
