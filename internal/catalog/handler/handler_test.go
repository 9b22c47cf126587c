package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"trade_enrichment_backend/internal/catalog/service"
	"trade_enrichment_backend/internal/catalog/store"
	"trade_enrichment_backend/internal/catalog/transport"
	"trade_enrichment_backend/platform/logger"
)

type stubSource struct {
	products map[int64]string
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (map[int64]string, store.LoadStats, error) {
	return s.products, store.LoadStats{RowsRead: len(s.products), Loaded: len(s.products)}, nil
}

func newTestRouter(t *testing.T, products map[int64]string, loaded bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{Logger: slog.New(slog.DiscardHandler)}
	svc := service.New(&stubSource{products: products}, nil, log)
	if loaded {
		if _, err := svc.Reload(context.Background()); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	h := New(svc)

	router := gin.New()
	router.GET("/catalog/stats", h.Stats)
	router.GET("/catalog/products/:id", h.GetProduct)
	router.POST("/admin/catalog/reload", h.Reload)
	return router
}

func TestStats(t *testing.T) {
	router := newTestRouter(t, map[int64]string{1: "Widget Pro", 2: "Gadget Max"}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp transport.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Size != 2 || resp.Source != "stub" {
		t.Fatalf("unexpected stats %+v", resp)
	}
}

func TestStats_BeforeFirstLoad(t *testing.T) {
	router := newTestRouter(t, nil, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/stats", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t, map[int64]string{7: "Gadget Max"}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/products/7", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp transport.ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 7 || resp.Name != "Gadget Max" {
		t.Fatalf("unexpected product %+v", resp)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newTestRouter(t, map[int64]string{7: "Gadget Max"}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/products/8", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetProduct_InvalidID(t *testing.T) {
	router := newTestRouter(t, nil, true)

	for _, id := range []string{"abc", "0", "-1"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/products/"+id, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for id %q, got %d", id, w.Code)
		}
	}
}

func TestReload(t *testing.T) {
	router := newTestRouter(t, map[int64]string{1: "Widget Pro"}, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/catalog/reload", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp transport.ReloadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Size != 1 || resp.Source != "stub" {
		t.Fatalf("unexpected reload response %+v", resp)
	}
}
