package apiserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/config"
)

func newTestServer() *Server {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Dashboard.CacheTTL = time.Minute
	return NewServer(nil, nil, cfg, zap.NewNop())
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	server := newTestServer()

	paths := []string{
		"/api/v1/units",
		"/api/v1/rooms",
		"/api/v1/items",
		"/api/v1/employees",
		"/api/v1/damage-reports",
		"/api/v1/dashboard/rooms",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		server.Router().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected 401, got %d", path, w.Code)
		}
	}
}

func TestAPIRejectsMalformedToken(t *testing.T) {
	server := newTestServer()

	for _, header := range []string{"not-a-bearer", "Bearer", "Bearer garbage.token.here"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
		req.Header.Set("Authorization", header)
		server.Router().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}
