// Package handlers provides HTTP handlers for quote and history operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/modules/quotes"
)

// Handler handles quote HTTP requests
type Handler struct {
	service *quotes.Service
	log     zerolog.Logger
}

// NewHandler creates a new quotes handler
func NewHandler(service *quotes.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "quotes").Logger(),
	}
}

// HandleGetQuote handles GET /api/quote/{symbol}
func (h *Handler) HandleGetQuote(w http.ResponseWriter, r *http.Request, symbol string) {
	quote, err := h.service.GetQuote(r.Context(), symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to fetch quote")
		http.Error(w, "Failed to fetch quote", http.StatusBadGateway)
		return
	}
	if quote == nil {
		http.Error(w, "Symbol not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(quote))
}

// HandleGetQuotes handles GET /api/quotes?symbols=A,B,C
func (h *Handler) HandleGetQuotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		http.Error(w, "symbols parameter is required", http.StatusBadRequest)
		return
	}

	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			symbols = append(symbols, trimmed)
		}
	}
	if len(symbols) == 0 {
		http.Error(w, "symbols parameter is required", http.StatusBadRequest)
		return
	}

	result := h.service.GetQuotes(r.Context(), symbols)

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"quotes":    result,
		"requested": len(symbols),
		"returned":  len(result),
	}))
}

// HandleGetHistory handles GET /api/history/{symbol}?range=1y
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request, symbol string) {
	rng := r.URL.Query().Get("range")

	summary, err := h.service.GetHistory(r.Context(), symbol, rng)
	if err != nil {
		if strings.Contains(err.Error(), "invalid range") {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to fetch history")
		http.Error(w, "Failed to fetch history", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(summary))
}

type compareRequest struct {
	Symbols []string `json:"symbols"`
	Range   string   `json:"range,omitempty"`
}

// HandleCompare handles POST /api/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.Symbols) == 0 {
		http.Error(w, "symbols field is required", http.StatusBadRequest)
		return
	}

	report, err := h.service.Compare(r.Context(), req.Symbols, req.Range)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(report))
}

// envelope wraps payloads in the standard data/metadata response shape.
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
