package service

import (
	"context"
	"strings"

	"trade_enrichment_backend/internal/catalog/loader"
	"trade_enrichment_backend/internal/catalog/repository"
	"trade_enrichment_backend/internal/catalog/store"
)

// Source produces a fresh catalog map. Implementations must apply the
// reference-data rules (skip invalid rows, first occurrence of an id wins)
// so the service can swap the result in unfiltered.
type Source interface {
	Name() string
	Load(ctx context.Context) (map[int64]string, store.LoadStats, error)
}

// FileSource loads the catalog from a local CSV file.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in logs and events.
func (s *FileSource) Name() string { return "file:" + s.path }

// Load reads and filters the CSV file.
func (s *FileSource) Load(_ context.Context) (map[int64]string, store.LoadStats, error) {
	return loader.LoadFile(s.path)
}

// PostgresSource loads the catalog from the products reference table.
type PostgresSource struct {
	repo repository.Repository
}

// NewPostgresSource creates a database-backed catalog source.
func NewPostgresSource(repo repository.Repository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

// Name identifies the source in logs and events.
func (s *PostgresSource) Name() string { return "postgres:products" }

// Load fetches all product rows and applies the same filtering rules as the
// file loader: invalid rows are dropped, the first occurrence of an id wins.
func (s *PostgresSource) Load(ctx context.Context) (map[int64]string, store.LoadStats, error) {
	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, store.LoadStats{}, err
	}

	products := make(map[int64]string, len(rows))
	var stats store.LoadStats
	for _, row := range rows {
		stats.RowsRead++
		name := strings.TrimSpace(row.Name)
		if row.ID <= 0 || name == "" {
			stats.Skipped++
			continue
		}
		if _, exists := products[row.ID]; exists {
			stats.Duplicates++
			continue
		}
		products[row.ID] = name
	}
	stats.Loaded = len(products)
	return products, stats, nil
}
