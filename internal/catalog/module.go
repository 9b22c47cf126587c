// Package catalog provides the product reference data bounded context.
package catalog

import (
	"trade_enrichment_backend/internal/catalog/handler"
	"trade_enrichment_backend/internal/catalog/repository"
	"trade_enrichment_backend/internal/catalog/service"
	"trade_enrichment_backend/internal/catalog/store"
	"trade_enrichment_backend/internal/events"
	apphttp "trade_enrichment_backend/internal/http"
	"trade_enrichment_backend/platform/config"
	"trade_enrichment_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module. The pool may be nil
// when the catalog source is a file.
func NewModule(cfg config.CatalogConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	var source service.Source
	switch cfg.GetCatalogSource() {
	case config.CatalogSourcePostgres:
		source = service.NewPostgresSource(repository.New(pool))
	default:
		source = service.NewFileSource(cfg.GetCatalogFile())
	}

	svc := service.New(source, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Store returns the snapshot store for read-side consumers.
func (m *Module) Store() *store.Store {
	return m.service.Store()
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/stats", m.handler.Stats)
	ctx.V1.GET("/catalog/products/:id", m.handler.GetProduct)

	ctx.Admin.POST("/catalog/reload", m.handler.Reload)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
