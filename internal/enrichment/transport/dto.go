// Package transport defines the wire types of the enrichment API.
package transport

// RawRecord is one trade row exactly as received: four untyped text fields.
// No invariants hold here; validation happens in the enrichment service.
type RawRecord struct {
	Date      string `json:"date"`
	ProductID string `json:"productId"`
	Currency  string `json:"currency"`
	Price     string `json:"price"`
}

// EnrichedRecord is one successfully processed trade row. Price carries the
// trimmed original text so formatting like trailing zeros survives the trip.
type EnrichedRecord struct {
	Date        string `json:"date"`
	ProductName string `json:"productName"`
	Currency    string `json:"currency"`
	Price       string `json:"price"`
}

// EnrichmentSummary aggregates one batch. MissingProductIDs is the distinct
// set of unmapped ids, ascending.
type EnrichmentSummary struct {
	Total             int     `json:"total"`
	Enriched          int     `json:"enriched"`
	MissingProduct    int     `json:"missingProduct"`
	Discarded         int     `json:"discarded"`
	MissingProductIDs []int64 `json:"missingProductIds"`
}

// EnrichRecordsRequest is the JSON batch request.
type EnrichRecordsRequest struct {
	Records []RawRecord `json:"records" validate:"required"`
}

// EnrichRecordsResponse is the JSON batch response.
type EnrichRecordsResponse struct {
	Records []EnrichedRecord  `json:"records"`
	Summary EnrichmentSummary `json:"summary"`
}
