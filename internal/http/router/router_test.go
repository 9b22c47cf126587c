package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"trade_enrichment_backend/internal/catalog"
	"trade_enrichment_backend/internal/enrichment"
	"trade_enrichment_backend/internal/events"
	apphttp "trade_enrichment_backend/internal/http"
	"trade_enrichment_backend/platform/logger"
	"trade_enrichment_backend/platform/validator"
)

type testConfig struct {
	catalogFile string
}

func (c testConfig) GetHTTPAddr() string      { return ":0" }
func (c testConfig) GetCORSAllowAll() bool    { return false }
func (c testConfig) GetCORSOrigins() []string { return []string{"http://localhost:4200"} }
func (c testConfig) GetCORSAllowCreds() bool  { return true }
func (c testConfig) GetRateLimitRPS() float64 { return 1000 }
func (c testConfig) GetRateLimitBurst() int   { return 1000 }
func (c testConfig) GetCatalogSource() string { return "file" }
func (c testConfig) GetCatalogFile() string   { return c.catalogFile }
func (c testConfig) GetEnrichMaxRows() int    { return 1000 }

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	data := "product_id,product_name\n1,Widget Pro\n2,Gadget Max\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, loadCatalog bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := &logger.Logger{Logger: slog.New(slog.DiscardHandler)}
	bus := events.NewInMemoryBus(log)
	cfg := testConfig{catalogFile: writeCatalog(t)}

	catalogModule := catalog.NewModule(cfg, nil, bus, log)
	if loadCatalog {
		if _, err := catalogModule.Service().Reload(t.Context()); err != nil {
			t.Fatalf("load catalog: %v", err)
		}
	}

	enrichmentModule := enrichment.NewModule(cfg, catalogModule.Store(), validator.New(), log)
	enrichmentModule.RegisterHandlers(bus)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   catalogModule.Store(),
		EventBus: bus,
		Modules:  []apphttp.Module{catalogModule, enrichmentModule},
	}
	return New(app)
}

func TestHealth(t *testing.T) {
	engine := newTestApp(t, false)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before catalog load, got %d", w.Code)
	}

	engine = newTestApp(t, true)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after catalog load, got %d", w.Code)
	}
}

func TestEnrichThroughRouter(t *testing.T) {
	engine := newTestApp(t, true)

	body := "date,product_id,currency,price\n20250605,1,USD,150.25\n20250605,9,EUR,20.5\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enrich", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Widget Pro") {
		t.Fatalf("expected enriched name in body:\n%s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Missing Product Name") {
		t.Fatalf("expected placeholder in body:\n%s", w.Body.String())
	}
	if got := w.Header().Get("X-Records-Enriched"); got != "1" {
		t.Fatalf("expected X-Records-Enriched=1, got %q", got)
	}
}

func TestCatalogRoutesThroughRouter(t *testing.T) {
	engine := newTestApp(t, true)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Gadget Max") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/reload", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from reload, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	engine := newTestApp(t, true)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}
