package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all quote routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/quote/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetQuote(w, r, chi.URLParam(r, "symbol"))
	})
	r.Get("/quotes", h.HandleGetQuotes)
	r.Get("/history/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetHistory(w, r, chi.URLParam(r, "symbol"))
	})
	r.Post("/compare", h.HandleCompare)
}
