package service

import (
	"strconv"
	"sync"
	"testing"

	"trade_enrichment_backend/internal/enrichment/transport"
)

func TestReportMissing_OncePerID(t *testing.T) {
	log, h := newTestLogger()
	reporter := NewMissingReporter(log)

	for i := 0; i < 10; i++ {
		reporter.ReportMissing(42, "row")
	}
	if got := h.count("missing_product_mapping"); got != 1 {
		t.Fatalf("expected 1 warning, got %d", got)
	}

	reporter.ReportMissing(43, "row")
	if got := h.count("missing_product_mapping"); got != 2 {
		t.Fatalf("expected a warning for the new id, got %d total", got)
	}
}

func TestReportMissing_OncePerIDUnderConcurrency(t *testing.T) {
	log, h := newTestLogger()
	reporter := NewMissingReporter(log)

	const goroutines = 50
	const distinctIDs = 5

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for id := int64(1); id <= distinctIDs; id++ {
				reporter.ReportMissing(id, "worker "+strconv.Itoa(g))
			}
		}(g)
	}
	wg.Wait()

	if got := h.count("missing_product_mapping"); got != distinctIDs {
		t.Fatalf("expected exactly %d warnings, got %d", distinctIDs, got)
	}
}

func TestReportMissing_StateSpansBatches(t *testing.T) {
	log, h := newTestLogger()
	reporter := NewMissingReporter(log)
	engine := NewEngine(mapCatalog{}, reporter, log)

	batch := []transport.RawRecord{
		{Date: "20250601", ProductID: "5", Currency: "USD", Price: "1"},
		{Date: "20250601", ProductID: "6", Currency: "USD", Price: "1"},
	}

	// Two batches through the same engine: the second repeats the ids of the
	// first and must not warn again.
	engine.EnrichBatch(batch)
	engine.EnrichBatch(batch)

	if got := h.count("missing_product_mapping"); got != 2 {
		t.Fatalf("expected 2 warnings across both batches, got %d", got)
	}
}
