package wire

import (
	"pizza-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, auth authChain) {
	r.Route("/api/order", func(r chi.Router) {
		r.Get("/menu", orderHandler.GetMenu)

		r.Group(func(r chi.Router) {
			r.Use(auth.required())

			r.Put("/menu", orderHandler.AddMenuItem)
			r.Get("/", orderHandler.ListOrders)
			r.Post("/", orderHandler.CreateOrder)
		})
	})
}
