package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/gobalance/internal/adapter/http/handler"
)

func newTestRouter() nethttp.Handler {
	return NewRouter(RouterConfig{
		BalanceHandler: handler.NewBalanceHandler(nil),
		ReportHandler:  handler.NewReportHandler(nil),
		EntryHandler:   handler.NewEntryHandler(nil),
		HealthHandler:  handler.NewHealthHandler(nil, nil),
	})
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/health", nil))

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}
}

func TestRouterMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/v1/unknown", nil))

	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
