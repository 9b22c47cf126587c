package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trade_enrichment_backend/internal/catalog"
	"trade_enrichment_backend/internal/enrichment"
	"trade_enrichment_backend/internal/events"
	apphttp "trade_enrichment_backend/internal/http"
	"trade_enrichment_backend/internal/http/router"
	"trade_enrichment_backend/internal/scheduler"
	"trade_enrichment_backend/platform/config"
	"trade_enrichment_backend/platform/db"
	"trade_enrichment_backend/platform/logger"
	"trade_enrichment_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "catalog_source", cfg.CatalogSource)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, "migrations")
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(cfg, pool, eventBus, log)

	// The service is useless without a catalog; refuse to start with none.
	if err := withRetry(ctx, log, "initial catalog load", 5, 2*time.Second, func() error {
		_, err := catalogModule.Service().Reload(ctx)
		return err
	}); err != nil {
		log.Error("failed to load product catalog", "error", err)
		panic("failed to load product catalog: " + err.Error())
	}

	enrichmentModule := enrichment.NewModule(cfg, catalogModule.Store(), val, log)
	enrichmentModule.RegisterHandlers(eventBus)

	// Optional background catalog refresh (requires Redis)
	refreshClient, closeClient := initCatalogRefresh(ctx, cfg, catalogModule.Service(), log)
	if closeClient != nil {
		defer closeClient()
	}
	if refreshClient != nil && cfg.CatalogRefreshInterval > 0 {
		go scheduler.RunPeriodicRefresh(ctx, refreshClient, cfg.CatalogRefreshInterval, log)
		log.Info("periodic catalog refresh enabled", "interval", cfg.CatalogRefreshInterval.String())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   catalogModule.Store(),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			enrichmentModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initCatalogRefresh wires the asynq client and worker when Redis is
// configured. Without Redis the service still runs; reloads stay manual.
func initCatalogRefresh(ctx context.Context, cfg *config.Config, reloader scheduler.CatalogReloader, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background catalog refresh disabled")
		return nil, nil
	}

	worker, err := scheduler.NewWorker(cfg, reloader, log)
	if err != nil {
		log.Error("failed to initialize catalog refresh worker", "error", err)
		return nil, nil
	}
	go worker.Run(ctx)

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize catalog refresh client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
