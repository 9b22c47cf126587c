// Package enrichment provides the trade enrichment bounded context.
package enrichment

import (
	"context"

	"trade_enrichment_backend/internal/enrichment/handler"
	"trade_enrichment_backend/internal/enrichment/service"
	"trade_enrichment_backend/internal/events"
	apphttp "trade_enrichment_backend/internal/http"
	"trade_enrichment_backend/platform/config"
	"trade_enrichment_backend/platform/logger"
	"trade_enrichment_backend/platform/validator"
)

// Module is the enrichment bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	engine  *service.Engine
	log     *logger.Logger
}

// NewModule creates and initializes the enrichment module.
func NewModule(cfg config.EnrichmentConfig, catalog service.ProductCatalog, val *validator.Validator, log *logger.Logger) *Module {
	reporter := service.NewMissingReporter(log)
	engine := service.NewEngine(catalog, reporter, log)
	h := handler.New(engine, val, cfg.GetEnrichMaxRows())

	return &Module{
		handler: h,
		engine:  engine,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "enrichment"
}

// Engine returns the enrichment engine for external use.
func (m *Module) Engine() *service.Engine {
	return m.engine
}

// RegisterRoutes mounts enrichment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/enrich", m.handler.EnrichCSV)
	ctx.V1.POST("/enrich/records", m.handler.EnrichRecords)
}

// RegisterHandlers subscribes to domain events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.CatalogReloaded{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CatalogReloaded:
		// Audit trail of which snapshot enrichment now runs against.
		m.log.CatalogEvent("active_for_enrichment", e.Size, "source", e.Source)
		return nil
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
