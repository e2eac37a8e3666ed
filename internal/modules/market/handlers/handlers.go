// Package handlers provides HTTP handlers for market overview operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/modules/market"
)

// Handler handles market HTTP requests
type Handler struct {
	service *market.Service
	log     zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *market.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// HandleOverview handles GET /api/market/overview
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview := h.service.GetOverview(r.Context())

	response := map[string]interface{}{
		"data": overview,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleMovers handles GET /api/market/movers?direction=gainers
func (h *Handler) HandleMovers(w http.ResponseWriter, r *http.Request) {
	direction := r.URL.Query().Get("direction")

	movers, err := h.service.GetMovers(r.Context(), direction)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"direction": direction,
			"movers":    movers,
			"count":     len(movers),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
