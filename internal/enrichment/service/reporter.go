package service

import (
	"sync"

	"trade_enrichment_backend/platform/logger"
)

// MissingReporter emits the missing-product warning exactly once per distinct
// product id for the lifetime of the service instance, no matter how many
// rows, batches, or goroutines report the same id.
//
// It is an injected component, not a package global, so service instances and
// test suites never share warned-id state.
type MissingReporter struct {
	seen sync.Map // product id → struct{}
	log  *logger.Logger
}

// NewMissingReporter creates a reporter with an empty warned-id set.
func NewMissingReporter(log *logger.Logger) *MissingReporter {
	return &MissingReporter{log: log}
}

// ReportMissing records the id and logs a warning if this is the first report
// for it. LoadOrStore makes the insert-and-decide step atomic: under a race,
// exactly one caller observes the insert and logs.
func (r *MissingReporter) ReportMissing(productID int64, row string) {
	if _, loaded := r.seen.LoadOrStore(productID, struct{}{}); loaded {
		return
	}
	r.log.MissingProduct(productID, row)
}
