package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adilbek/photogallery/internal/config"
	"github.com/gin-gonic/gin"
)

func TestRouterServesHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{}
	cfg.Metrics.PrometheusPath = "/metrics"

	router := NewRouter(Dependencies{Config: cfg})

	for _, path := range []string{"/health/live", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200 from %s, got %d", path, rr.Code)
		}
	}
}

func TestReadinessSucceedsWithoutBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{}
	cfg.Metrics.PrometheusPath = "/metrics"

	router := NewRouter(Dependencies{Config: cfg})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from readiness with no backends wired, got %d", rr.Code)
	}
}
