// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"trade_enrichment_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Catalog Domain Events
// =============================================================================

// CatalogReloaded is published after a new catalog snapshot has been swapped in.
type CatalogReloaded struct {
	BaseEvent
	Source     string `json:"source"`
	Size       int    `json:"size"`
	RowsRead   int    `json:"rowsRead"`
	Skipped    int    `json:"skipped"`
	Duplicates int    `json:"duplicates"`
}

func (e CatalogReloaded) EventName() string { return "catalog.reloaded" }
