// Package store holds the in-memory product catalog snapshot.
//
// A snapshot is immutable once built. Reloads publish a whole new snapshot
// and swap a single atomic pointer, so concurrent lookups either see the old
// catalog or the new one in full, never a mix.
package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// LoadStats describes the outcome of building one snapshot.
type LoadStats struct {
	RowsRead   int
	Loaded     int
	Skipped    int
	Duplicates int
}

// Snapshot is an immutable product id → name mapping.
type Snapshot struct {
	products map[int64]string
	stats    LoadStats
	source   string
	loadedAt time.Time
}

// NewSnapshot builds a snapshot from a product map. The map must not be
// mutated by the caller after the handoff.
func NewSnapshot(products map[int64]string, stats LoadStats, source string) *Snapshot {
	return &Snapshot{
		products: products,
		stats:    stats,
		source:   source,
		loadedAt: time.Now(),
	}
}

// Lookup resolves a product name. Non-positive or unmapped ids are not found.
func (s *Snapshot) Lookup(id int64) (string, bool) {
	if s == nil || id <= 0 {
		return "", false
	}
	name, ok := s.products[id]
	return name, ok
}

// Size returns the number of products in the snapshot.
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}

// Stats returns the load statistics of the snapshot.
func (s *Snapshot) Stats() LoadStats { return s.stats }

// Source returns the name of the source the snapshot was loaded from.
func (s *Snapshot) Source() string { return s.source }

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// ErrNotLoaded is returned by Ping before the first successful load.
var ErrNotLoaded = errors.New("product catalog not loaded")

// Store publishes the current catalog snapshot to concurrent readers.
// The zero value is not usable; use New.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// New creates an empty store. Lookups against it report not-found until the
// first Swap.
func New() *Store {
	return &Store{}
}

// Swap publishes a new snapshot, replacing the previous one wholesale.
func (st *Store) Swap(s *Snapshot) {
	st.current.Store(s)
}

// Current returns the currently published snapshot, or nil before first load.
func (st *Store) Current() *Snapshot {
	return st.current.Load()
}

// Lookup resolves a product name against the current snapshot.
func (st *Store) Lookup(id int64) (string, bool) {
	return st.Current().Lookup(id)
}

// Size returns the size of the current snapshot.
func (st *Store) Size() int {
	return st.Current().Size()
}

// Ping implements the health check: the store is healthy once a snapshot has
// been published.
func (st *Store) Ping(_ context.Context) error {
	if st.Current() == nil {
		return ErrNotLoaded
	}
	return nil
}
