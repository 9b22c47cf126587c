// Package loader builds catalog snapshots from external sources.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"trade_enrichment_backend/internal/catalog/store"
)

// LoadCSV reads `product_id,product_name` rows and builds the catalog map.
//
// Rules, applied per row: a non-numeric or non-positive id is skipped, an
// empty (or whitespace-only) name is skipped, and the first occurrence of a
// duplicate id wins. An optional header row is ignored. Short rows are
// skipped; extra columns beyond the first two are ignored.
func LoadCSV(r io.Reader) (map[int64]string, store.LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	products := make(map[int64]string)
	var stats store.LoadStats

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, store.LoadStats{}, fmt.Errorf("read catalog csv: %w", err)
		}

		if stats.RowsRead == 0 && isHeader(record) {
			continue
		}
		stats.RowsRead++

		if len(record) < 2 {
			stats.Skipped++
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil || id <= 0 {
			stats.Skipped++
			continue
		}
		name := strings.TrimSpace(record[1])
		if name == "" {
			stats.Skipped++
			continue
		}
		if _, exists := products[id]; exists {
			stats.Duplicates++
			continue
		}
		products[id] = name
	}

	stats.Loaded = len(products)
	return products, stats, nil
}

// LoadFile opens path and delegates to LoadCSV.
func LoadFile(path string) (map[int64]string, store.LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, store.LoadStats{}, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "product_id" || first == "productid" || first == "id"
}
