// Package service owns the catalog lifecycle: initial load, reloads, and
// read access for other modules.
package service

import (
	"context"
	"fmt"
	"time"

	"trade_enrichment_backend/internal/catalog/store"
	"trade_enrichment_backend/internal/catalog/transport"
	"trade_enrichment_backend/internal/events"
	"trade_enrichment_backend/platform/apperr"
	"trade_enrichment_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

const productNotFoundMessage = "product not found"

// Service manages the catalog store.
type Service struct {
	store  *store.Store
	source Source
	bus    events.Bus
	log    *logger.Logger
	group  singleflight.Group
}

// New creates the catalog service. The store starts empty; call Reload to
// publish the first snapshot.
func New(source Source, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:  store.New(),
		source: source,
		bus:    bus,
		log:    log,
	}
}

// Store exposes the snapshot store for read-side consumers (enrichment, health).
func (s *Service) Store() *store.Store {
	return s.store
}

// Reload builds a fresh snapshot from the source and swaps it in.
// Concurrent calls are coalesced: every caller gets the result of a single
// underlying load.
func (s *Service) Reload(ctx context.Context) (transport.ReloadResponse, error) {
	v, err, _ := s.group.Do("reload", func() (interface{}, error) {
		products, stats, err := s.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", s.source.Name(), err)
		}

		snapshot := store.NewSnapshot(products, stats, s.source.Name())
		s.store.Swap(snapshot)

		s.log.CatalogEvent("reloaded", snapshot.Size(),
			"source", s.source.Name(),
			"rows_read", stats.RowsRead,
			"skipped", stats.Skipped,
			"duplicates", stats.Duplicates,
		)
		if s.bus != nil {
			s.bus.Publish(ctx, events.CatalogReloaded{
				BaseEvent:  events.NewBaseEvent(),
				Source:     s.source.Name(),
				Size:       snapshot.Size(),
				RowsRead:   stats.RowsRead,
				Skipped:    stats.Skipped,
				Duplicates: stats.Duplicates,
			})
		}

		return reloadResponse(snapshot), nil
	})
	if err != nil {
		return transport.ReloadResponse{}, err
	}
	return v.(transport.ReloadResponse), nil
}

// Stats reports the current snapshot.
func (s *Service) Stats() (transport.StatsResponse, error) {
	snapshot := s.store.Current()
	if snapshot == nil {
		return transport.StatsResponse{}, apperr.Unavailable("catalog not loaded")
	}
	stats := snapshot.Stats()
	return transport.StatsResponse{
		Source:     snapshot.Source(),
		Size:       snapshot.Size(),
		RowsRead:   stats.RowsRead,
		Skipped:    stats.Skipped,
		Duplicates: stats.Duplicates,
		LoadedAt:   snapshot.LoadedAt().UTC().Format(time.RFC3339),
	}, nil
}

// GetProduct resolves one product by id.
func (s *Service) GetProduct(id int64) (transport.ProductResponse, error) {
	name, ok := s.store.Lookup(id)
	if !ok {
		return transport.ProductResponse{}, apperr.NotFound(productNotFoundMessage)
	}
	return transport.ProductResponse{ID: id, Name: name}, nil
}

func reloadResponse(snapshot *store.Snapshot) transport.ReloadResponse {
	stats := snapshot.Stats()
	return transport.ReloadResponse{
		Source:     snapshot.Source(),
		Size:       snapshot.Size(),
		RowsRead:   stats.RowsRead,
		Skipped:    stats.Skipped,
		Duplicates: stats.Duplicates,
	}
}
