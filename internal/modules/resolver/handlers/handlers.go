// Package handlers provides HTTP handlers for symbol resolution operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/modules/resolver"
)

// Handler handles symbol resolution HTTP requests
type Handler struct {
	service        *resolver.Service
	preferRegional bool
	log            zerolog.Logger
}

// NewHandler creates a new resolver handler. preferRegional is the
// server-wide default; individual requests can override it.
func NewHandler(
	service *resolver.Service,
	preferRegional bool,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:        service,
		preferRegional: preferRegional,
		log:            log.With().Str("handler", "resolver").Logger(),
	}
}

type resolveRequest struct {
	Query          string `json:"query"`
	PreferRegional *bool  `json:"prefer_regional,omitempty"`
}

// HandleResolve handles POST /api/resolve
// Resolves a single free-text query to a ticker symbol
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query field is required", http.StatusBadRequest)
		return
	}

	result := h.service.Resolve(r.Context(), req.Query, h.preference(req.PreferRegional))

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"query":             req.Query,
			"resolved":          result.Resolved(),
			"resolved_symbol":   result.ResolvedSymbol,
			"suggestions":       result.Suggestions,
			"message":           result.Message,
			"formatted_message": result.FormattedMessage(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleResolveBatch handles POST /api/resolve/batch
// Resolves a comma-separated list of queries in one call
func (h *Handler) HandleResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query field is required", http.StatusBadRequest)
		return
	}

	batch := h.service.ResolveMultiple(r.Context(), req.Query, h.preference(req.PreferRegional))

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"query":            req.Query,
			"resolved_symbols": batch.ResolvedSymbols,
			"suggestions":      batch.Suggestions,
			"message":          batch.Message,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleSearch handles GET /api/search
// Returns the ranked external-search candidates without auto-resolution
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	preferRegional := h.preferRegional
	if raw := r.URL.Query().Get("prefer_regional"); raw != "" {
		preferRegional = raw == "true" || raw == "1"
	}

	suggestions := h.service.SearchCandidates(r.Context(), query, preferRegional)
	if suggestions == nil {
		suggestions = []resolver.Suggestion{}
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"query":       query,
			"suggestions": suggestions,
			"count":       len(suggestions),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// preference resolves a per-request override against the server default.
func (h *Handler) preference(override *bool) bool {
	if override != nil {
		return *override
	}
	return h.preferRegional
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
