package scheduler

import (
	"context"
	"fmt"

	catalogtransport "trade_enrichment_backend/internal/catalog/transport"
	"trade_enrichment_backend/platform/config"
	"trade_enrichment_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// CatalogReloader is the slice of the catalog service the worker needs.
type CatalogReloader interface {
	Reload(ctx context.Context) (catalogtransport.ReloadResponse, error)
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	catalog CatalogReloader
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, catalog CatalogReloader, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		catalog: catalog,
		log:     log,
	}

	mux.HandleFunc(TaskCatalogRefresh, w.handleCatalogRefresh)

	return w, nil
}

func (w *Worker) handleCatalogRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCatalogRefreshPayload(task)
	if err != nil {
		return err
	}

	result, err := w.catalog.Reload(ctx)
	if err != nil {
		return err
	}

	w.log.Info("catalog refresh task completed",
		"reason", payload.Reason,
		"size", result.Size,
		"source", result.Source,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
