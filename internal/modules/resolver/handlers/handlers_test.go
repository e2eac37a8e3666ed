package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickermind/tickermind/internal/modules/resolver"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	b := resolver.NewIndexBuilder()
	b.AddReferenceRow("Reliance Industries Limited", "RELIANCE.NS")
	b.AddReferenceRow("Tata Consultancy Services Limited", "TCS.NS")
	ix := b.Build()

	log := zerolog.New(nil).Level(zerolog.Disabled)
	service := resolver.NewService(ix, nil, nil, time.Second, log)
	return NewHandler(service, true, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "response must carry a data object")
	return data
}

func TestHandleResolve(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleResolve, `{"query": "Reliance Industries"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	data := decodeData(t, rec)
	assert.Equal(t, true, data["resolved"])
	assert.Equal(t, "RELIANCE.NS", data["resolved_symbol"])
	assert.Contains(t, data["message"], "Resolved")
}

func TestHandleResolve_Unresolved(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleResolve, `{"query": "Qwxzyjk Unknown"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, false, data["resolved"])
	assert.Equal(t, "", data["resolved_symbol"])
	assert.NotEmpty(t, data["message"])
}

func TestHandleResolve_MissingQuery(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleResolve, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleResolve_InvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleResolve, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleResolveBatch(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleResolveBatch, `{"query": "TCS, Reliance Industries"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)

	symbols, ok := data["resolved_symbols"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"TCS.NS", "RELIANCE.NS"}, symbols)
}

func TestHandleResolveBatch_MissingQuery(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleResolveBatch, `{"query": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch_MissingParam(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch_NoProvider(t *testing.T) {
	// With no search provider wired the candidate list is empty, not an error.
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/search?q=reliance", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(0), data["count"])
	suggestions, ok := data["suggestions"].([]interface{})
	require.True(t, ok, "suggestions must encode as an array, not null")
	assert.Empty(t, suggestions)
}
