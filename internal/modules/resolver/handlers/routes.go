package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all symbol resolution routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/resolve", func(r chi.Router) {
		r.Post("/", h.HandleResolve)
		r.Post("/batch", h.HandleResolveBatch)
	})
	r.Get("/search", h.HandleSearch)
}
