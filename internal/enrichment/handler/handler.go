package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"trade_enrichment_backend/internal/enrichment/service"
	"trade_enrichment_backend/internal/enrichment/transport"
	"trade_enrichment_backend/platform/httpkit"
	"trade_enrichment_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgMalformedCSV     = "malformed csv body"
	msgTooManyRows      = "batch exceeds configured row limit"
)

// Summary headers of the CSV endpoint.
const (
	HeaderRecordsTotal      = "X-Records-Total"
	HeaderRecordsEnriched   = "X-Records-Enriched"
	HeaderRecordsMissing    = "X-Records-Missing-Product"
	HeaderRecordsDiscarded  = "X-Records-Discarded"
	HeaderMissingProductIDs = "X-Missing-Product-Ids"
)

// Handler handles HTTP requests for trade enrichment.
type Handler struct {
	engine  *service.Engine
	val     *validator.Validator
	maxRows int
}

// New creates a new enrichment handler.
func New(engine *service.Engine, val *validator.Validator, maxRows int) *Handler {
	return &Handler{engine: engine, val: val, maxRows: maxRows}
}

// EnrichCSV enriches a CSV batch. The body is `date,product_id,currency,price`
// rows; the response is `date,product_name,currency,price` with the batch
// summary mapped onto response headers.
// POST /api/v1/enrich
func (h *Handler) EnrichCSV(c *gin.Context) {
	records, err := transport.DecodeCSV(c.Request.Body)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMalformedCSV, err.Error())
		return
	}
	if len(records) > h.maxRows {
		httpkit.Error(c, http.StatusRequestEntityTooLarge, msgTooManyRows, gin.H{"maxRows": h.maxRows})
		return
	}

	enriched, summary := h.engine.EnrichBatch(records)

	writeSummaryHeaders(c, summary)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := transport.EncodeCSV(c.Writer, enriched); err != nil {
		// Headers are gone already; nothing to do but log via gin's error sink.
		_ = c.Error(err)
	}
}

// EnrichRecords enriches a JSON batch.
// POST /api/v1/enrich/records
func (h *Handler) EnrichRecords(c *gin.Context) {
	var req transport.EnrichRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if len(req.Records) > h.maxRows {
		httpkit.Error(c, http.StatusRequestEntityTooLarge, msgTooManyRows, gin.H{"maxRows": h.maxRows})
		return
	}

	enriched, summary := h.engine.EnrichBatch(req.Records)
	httpkit.OK(c, transport.EnrichRecordsResponse{Records: enriched, Summary: summary})
}

func writeSummaryHeaders(c *gin.Context, summary transport.EnrichmentSummary) {
	c.Header(HeaderRecordsTotal, strconv.Itoa(summary.Total))
	c.Header(HeaderRecordsEnriched, strconv.Itoa(summary.Enriched))
	c.Header(HeaderRecordsMissing, strconv.Itoa(summary.MissingProduct))
	c.Header(HeaderRecordsDiscarded, strconv.Itoa(summary.Discarded))

	ids := make([]string, 0, len(summary.MissingProductIDs))
	for _, id := range summary.MissingProductIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	c.Header(HeaderMissingProductIDs, strings.Join(ids, ","))
}
