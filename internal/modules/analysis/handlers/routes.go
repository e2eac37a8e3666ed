package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/analysis/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleAnalyze(w, r, chi.URLParam(r, "symbol"))
	})
}
