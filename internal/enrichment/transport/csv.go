package transport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSV wire format of the enrichment endpoint. The input header is optional;
// the output always carries one.
var (
	inputHeader  = []string{"date", "product_id", "currency", "price"}
	outputHeader = []string{"date", "product_name", "currency", "price"}
)

// DecodeCSV reads raw trade rows. Short rows are padded with empty fields so
// presence validation can report exactly which columns were missing; extra
// columns are ignored. Structurally broken CSV (bad quoting) is an error.
func DecodeCSV(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var records []RawRecord
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode trades csv: %w", err)
		}
		if first {
			first = false
			if isInputHeader(row) {
				continue
			}
		}

		for len(row) < len(inputHeader) {
			row = append(row, "")
		}
		records = append(records, RawRecord{
			Date:      row[0],
			ProductID: row[1],
			Currency:  row[2],
			Price:     row[3],
		})
	}
	return records, nil
}

// EncodeCSV writes enriched rows with the output header.
func EncodeCSV(w io.Writer, records []EnrichedRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(outputHeader); err != nil {
		return fmt.Errorf("encode trades csv: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Date, rec.ProductName, rec.Currency, rec.Price}); err != nil {
			return fmt.Errorf("encode trades csv: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func isInputHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), inputHeader[0]) &&
		len(row) > 1 && strings.EqualFold(strings.TrimSpace(row[1]), inputHeader[1])
}
