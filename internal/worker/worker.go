package worker

import (
	"context"
	"time"

	"admin-gateway/internal/service"
	"admin-gateway/internal/util"

	"go.uber.org/zap"
)

// SnapshotWorker keeps the cached catalog snapshot warm by refreshing it
// on a fixed interval while an upstream session is connected.
type SnapshotWorker struct {
	svc      *service.AdminService
	interval time.Duration
	stop     chan struct{}
	logger   *zap.Logger
}

// NewSnapshotWorker creates a new snapshot refresher
func NewSnapshotWorker(svc *service.AdminService, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		svc:      svc,
		interval: interval,
		stop:     make(chan struct{}),
		logger:   util.GetLogger(),
	}
}

// Start runs the refresh loop until the context is cancelled or Stop is
// called. Refresh failures are logged and retried on the next tick.
func (w *SnapshotWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting snapshot worker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Snapshot worker context cancelled, stopping")
			return ctx.Err()
		case <-w.stop:
			return nil
		case <-ticker.C:
			if !w.svc.Connected() {
				continue
			}
			if err := w.svc.RefreshSnapshot(ctx); err != nil {
				w.logger.Warn("Snapshot refresh failed", zap.Error(err))
			}
		}
	}
}

// Stop stops the worker
func (w *SnapshotWorker) Stop() {
	w.logger.Info("Stopping snapshot worker")
	close(w.stop)
}
