package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/testutil"
)

// TestSystemEndpoints covers the health and version probes.
func TestSystemEndpoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSystemHandler(service.NewSystemService(db))

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Health(rec, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		health := testutil.DecodeJSON[HealthResponse](t, rec)
		if health.Status != "healthy" || health.Database != "connected" {
			t.Errorf("unexpected health body: %+v", health)
		}
	})

	t.Run("Version", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Version(rec, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		version := testutil.DecodeJSON[VersionResponse](t, rec)
		if version.Version == "" {
			t.Error("version must not be empty")
		}
	})
}
