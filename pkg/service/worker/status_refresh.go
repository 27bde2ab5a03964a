package worker

import (
	"context"
	"time"

	"github.com/classroom-tools/attendctl/pkg/utils/logging"
)

// DefaultStatusInterval is how often the schedule status table is reloaded
// while the interactive console is open
const DefaultStatusInterval = time.Minute

// StatusLoader reloads the schedule status of a console
type StatusLoader interface {
	RefreshScheduleStatus(ctx context.Context) error
}

// StatusRefreshWorker keeps the schedule status table fresh so that the
// next run column does not drift while the console stays open. The first
// load is left to the console itself.
type StatusRefreshWorker struct {
	loader   StatusLoader
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewStatusRefreshWorker creates a worker reloading every interval
func NewStatusRefreshWorker(loader StatusLoader, interval time.Duration) *StatusRefreshWorker {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	return &StatusRefreshWorker{
		loader:   loader,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the refresh loop in the background
func (w *StatusRefreshWorker) Start(ctx context.Context) {
	logging.Default().Debug("Schedule status worker starting", "interval", w.interval.String())
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *StatusRefreshWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Debug("Schedule status worker stopped")
}

func (w *StatusRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.loader.RefreshScheduleStatus(ctx); err != nil {
				// keep the last table and retry on the next tick
				logging.Default().Warn("Schedule status refresh failed", "error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}
