package service

import (
	"fmt"
	"slices"

	"trade_enrichment_backend/internal/enrichment/transport"
	"trade_enrichment_backend/platform/logger"
)

// PlaceholderProductName is substituted when a product id has no catalog
// entry. The exact string is part of the API contract; downstream consumers
// match on it.
const PlaceholderProductName = "Missing Product Name"

// ProductCatalog is the read side of the catalog needed by the engine.
type ProductCatalog interface {
	Lookup(id int64) (string, bool)
}

// Engine runs the per-row validation/enrichment pipeline. It is safe for
// concurrent use: the catalog is read-only and the reporter handles its own
// synchronization.
type Engine struct {
	catalog  ProductCatalog
	reporter *MissingReporter
	log      *logger.Logger
}

// NewEngine creates an enrichment engine.
func NewEngine(catalog ProductCatalog, reporter *MissingReporter, log *logger.Logger) *Engine {
	return &Engine{
		catalog:  catalog,
		reporter: reporter,
		log:      log,
	}
}

type rowOutcome int

const (
	rowEnriched rowOutcome = iota
	rowMissingProduct
	rowDiscarded
)

// EnrichOne processes a single raw row. The boolean is false when the row
// failed validation and was discarded.
func (e *Engine) EnrichOne(rec transport.RawRecord) (transport.EnrichedRecord, bool) {
	enriched, outcome, _ := e.enrich(rec)
	return enriched, outcome != rowDiscarded
}

// EnrichBatch processes rows independently and in input order. Discarded rows
// are omitted from the output, never reordered around. The summary counts
// every input row exactly once.
func (e *Engine) EnrichBatch(records []transport.RawRecord) ([]transport.EnrichedRecord, transport.EnrichmentSummary) {
	enriched := make([]transport.EnrichedRecord, 0, len(records))
	missingIDs := make(map[int64]struct{})
	summary := transport.EnrichmentSummary{Total: len(records)}

	for _, rec := range records {
		out, outcome, productID := e.enrich(rec)
		switch outcome {
		case rowEnriched:
			summary.Enriched++
			enriched = append(enriched, out)
		case rowMissingProduct:
			summary.MissingProduct++
			missingIDs[productID] = struct{}{}
			enriched = append(enriched, out)
		case rowDiscarded:
			summary.Discarded++
		}
	}

	summary.MissingProductIDs = make([]int64, 0, len(missingIDs))
	for id := range missingIDs {
		summary.MissingProductIDs = append(summary.MissingProductIDs, id)
	}
	slices.Sort(summary.MissingProductIDs)

	return enriched, summary
}

// enrich runs one row through validation, catalog lookup, and diagnostics.
// The returned product id is meaningful only for rowMissingProduct.
func (e *Engine) enrich(rec transport.RawRecord) (transport.EnrichedRecord, rowOutcome, int64) {
	trade, failure := Validate(rec)
	if failure != nil {
		if failure.Kind.Logged() {
			e.log.ValidationFailure(string(failure.Kind), failure.MissingFields, rowContext(rec))
		}
		return transport.EnrichedRecord{}, rowDiscarded, 0
	}

	name, found := e.catalog.Lookup(trade.ProductID)
	if !found {
		e.reporter.ReportMissing(trade.ProductID, rowContext(rec))
		return transport.EnrichedRecord{
			Date:        trade.DateText,
			ProductName: PlaceholderProductName,
			Currency:    trade.Currency,
			Price:       trade.PriceText,
		}, rowMissingProduct, trade.ProductID
	}

	return transport.EnrichedRecord{
		Date:        trade.DateText,
		ProductName: name,
		Currency:    trade.Currency,
		Price:       trade.PriceText,
	}, rowEnriched, 0
}

func rowContext(rec transport.RawRecord) string {
	return fmt.Sprintf("date=%q productId=%q currency=%q price=%q", rec.Date, rec.ProductID, rec.Currency, rec.Price)
}
