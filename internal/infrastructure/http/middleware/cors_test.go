package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(t *testing.T, opts CORSOptions) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return CORSWithOptions(opts)(next)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := corsHandler(t, CORSOptions{AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/v1/workspaces", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSPreflight(t *testing.T) {
	h := corsHandler(t, CORSOptions{
		AllowedOrigins: []string{"https://app.example.com"},
		MaxAgeSeconds:  1800,
	})

	req := httptest.NewRequest(http.MethodOptions, "/v1/workspaces", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1800", rec.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORSRejectsUnknownOriginPreflight(t *testing.T) {
	h := corsHandler(t, CORSOptions{AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/v1/workspaces", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSUnknownOriginSimpleRequestGetsNoHeaders(t *testing.T) {
	h := corsHandler(t, CORSOptions{AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/v1/workspaces", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "the handler still runs; the browser does the blocking")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisabledWhenNoOriginsConfigured(t *testing.T) {
	h := corsHandler(t, CORSOptions{})

	req := httptest.NewRequest(http.MethodGet, "/v1/workspaces", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Vary"))
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	h := corsHandler(t, CORSOptions{AllowedOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/v1/workspaces", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://anything.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
