package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

func NewWorkers(services *service.ClientServices, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{newSyncWorker(services.SyncJob, cfg.SyncInterval)},
		logger:  logger,
	}
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
	if w.logger != nil {
		w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// syncWorker runs the periodic pull and push cycle.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func newSyncWorker(job service.ClientSyncJob, interval time.Duration) *syncWorker {
	return &syncWorker{job: job, interval: interval}
}

func (s *syncWorker) Start(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
