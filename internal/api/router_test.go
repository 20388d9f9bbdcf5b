package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Mahesh199811/OrderManagement/internal/api"
	"github.com/Mahesh199811/OrderManagement/internal/config"
	"github.com/Mahesh199811/OrderManagement/internal/health"
	"github.com/Mahesh199811/OrderManagement/internal/storage/memory"
)

func newRouterWithConfig(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	return api.NewRouter(cfg, memory.NewOrderRepository(), health.NewHandler("test"), nil, nil)
}

func TestRouter_SwaggerEnabledInDevelopment(t *testing.T) {
	r := newRouterWithConfig(t, config.Config{Env: config.EnvDevelopment, SwaggerEnabled: true})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected swagger UI in development, got %d", w.Code)
	}
}

func TestRouter_SwaggerDisabledInProduction(t *testing.T) {
	r := newRouterWithConfig(t, config.Config{Env: config.EnvProduction, SwaggerEnabled: false})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for swagger in production, got %d", w.Code)
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	r := newRouterWithConfig(t, config.Config{Env: config.EnvDevelopment})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", w.Code)
	}
}

func TestRouter_PermissiveCORSByDefault(t *testing.T) {
	r := newRouterWithConfig(t, config.Config{Env: config.EnvDevelopment})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("credentials must not be combined with wildcard, got %q", got)
	}
}

func TestRouter_ExplicitCORSAllowList(t *testing.T) {
	cfg := config.Config{
		Env:            config.EnvStaging,
		AllowedOrigins: []string{"https://shop.example.com"},
	}
	r := newRouterWithConfig(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Errorf("expected allow-listed origin echoed, got %q", got)
	}

	// Посторонний origin не получает CORS-заголовков.
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers for unknown origin, got %q", got)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r := newRouterWithConfig(t, config.Config{Env: config.EnvDevelopment})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(api.HeaderRequestID) == "" {
		t.Error("expected X-Request-ID to be set")
	}

	// Клиентский идентификатор сохраняется.
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(api.HeaderRequestID, "client-supplied-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(api.HeaderRequestID); got != "client-supplied-id" {
		t.Errorf("expected client request id to be kept, got %q", got)
	}
}
