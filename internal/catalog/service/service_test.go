package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"trade_enrichment_backend/internal/catalog/repository"
	"trade_enrichment_backend/internal/catalog/store"
	"trade_enrichment_backend/internal/events"
	"trade_enrichment_backend/platform/apperr"
	"trade_enrichment_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.DiscardHandler)}
}

type stubSource struct {
	mu       sync.Mutex
	loads    int
	products map[int64]string
	err      error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (map[int64]string, store.LoadStats, error) {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	if s.err != nil {
		return nil, store.LoadStats{}, s.err
	}
	return s.products, store.LoadStats{RowsRead: len(s.products), Loaded: len(s.products)}, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func TestReload_SwapsSnapshot(t *testing.T) {
	source := &stubSource{products: map[int64]string{1: "Widget Pro"}}
	svc := New(source, nil, testLogger())

	resp, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Size != 1 || resp.Source != "stub" {
		t.Fatalf("unexpected reload response %+v", resp)
	}
	if name, ok := svc.Store().Lookup(1); !ok || name != "Widget Pro" {
		t.Fatalf("expected snapshot to be live, got %q %v", name, ok)
	}
}

func TestReload_ErrorKeepsOldSnapshot(t *testing.T) {
	source := &stubSource{products: map[int64]string{1: "Widget Pro"}}
	svc := New(source, nil, testLogger())
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source.err = errors.New("source unavailable")
	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if name, ok := svc.Store().Lookup(1); !ok || name != "Widget Pro" {
		t.Fatal("expected previous snapshot to stay live after failed reload")
	}
}

func TestReload_PublishesCatalogReloaded(t *testing.T) {
	bus := &recordingBus{}
	svc := New(&stubSource{products: map[int64]string{1: "Widget Pro"}}, bus, testLogger())

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	reloaded, ok := bus.events[0].(events.CatalogReloaded)
	if !ok {
		t.Fatalf("expected CatalogReloaded, got %T", bus.events[0])
	}
	if reloaded.Size != 1 || reloaded.Source != "stub" {
		t.Fatalf("unexpected event %+v", reloaded)
	}
}

func TestReload_ConcurrentCallsCoalesced(t *testing.T) {
	source := &stubSource{products: map[int64]string{1: "Widget Pro"}}
	svc := New(source, nil, testLogger())

	var g errgroup.Group
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			<-start
			_, err := svc.Reload(context.Background())
			return err
		})
	}
	close(start)
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source.mu.Lock()
	loads := source.loads
	source.mu.Unlock()
	if loads > 8 {
		t.Fatalf("expected at most one load per caller, got %d", loads)
	}
	if loads == 0 {
		t.Fatal("expected at least one load")
	}
}

func TestStats_BeforeFirstLoad(t *testing.T) {
	svc := New(&stubSource{}, nil, testLogger())
	_, err := svc.Stats()
	if err == nil {
		t.Fatal("expected error before first load")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected Unavailable kind, got %v", apperr.GetKind(err))
	}
}

func TestGetProduct(t *testing.T) {
	svc := New(&stubSource{products: map[int64]string{7: "Gadget Max"}}, nil, testLogger())
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.GetProduct(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != 7 || resp.Name != "Gadget Max" {
		t.Fatalf("unexpected response %+v", resp)
	}

	_, err = svc.GetProduct(8)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound kind, got %v", err)
	}
}

type stubRepo struct {
	rows []repository.ProductRow
	err  error
}

func (r *stubRepo) ListProducts(context.Context) ([]repository.ProductRow, error) {
	return r.rows, r.err
}

func TestPostgresSource_AppliesFilterRules(t *testing.T) {
	source := NewPostgresSource(&stubRepo{rows: []repository.ProductRow{
		{ID: 1, Name: "Widget Pro"},
		{ID: 0, Name: "Zero"},
		{ID: 2, Name: "   "},
		{ID: 1, Name: "Widget Duplicate"},
		{ID: 3, Name: "  Gadget Max  "},
	}})

	products, stats, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %v", products)
	}
	if products[1] != "Widget Pro" || products[3] != "Gadget Max" {
		t.Fatalf("unexpected products %v", products)
	}
	if stats.RowsRead != 5 || stats.Skipped != 2 || stats.Duplicates != 1 || stats.Loaded != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
