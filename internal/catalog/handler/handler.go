package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trade_enrichment_backend/internal/catalog/service"
	"trade_enrichment_backend/platform/httpkit"
)

const msgInvalidProductID = "invalid product id"

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Stats reports the current catalog snapshot.
// GET /api/v1/catalog/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProduct resolves one product by id.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProductID, nil)
		return
	}

	result, err := h.svc.GetProduct(id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Reload rebuilds the catalog snapshot from the configured source.
// POST /api/v1/admin/catalog/reload
func (h *Handler) Reload(c *gin.Context) {
	result, err := h.svc.Reload(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
