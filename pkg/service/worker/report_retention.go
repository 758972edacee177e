package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/interfaces"
	"github.com/biaslens-dev/biaslens/pkg/utils/logging"
)

const (
	// DefaultRetention is how long analysis reports are kept
	DefaultRetention = 90 * 24 * time.Hour

	// DefaultPruneInterval is how often the prune cycle runs
	DefaultPruneInterval = time.Hour
)

// ReportRetentionWorker prunes analysis reports past their retention
// period in the background.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ReportRetentionWorker struct {
	repo      interfaces.Repository
	retention time.Duration
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewReportRetentionWorker creates a worker that deletes reports older
// than the retention period on every interval tick.
func NewReportRetentionWorker(repo interfaces.Repository, retention, interval time.Duration) *ReportRetentionWorker {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	return &ReportRetentionWorker{
		repo:      repo,
		retention: retention,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background prune loop
// - Initial prune and periodic cycles both run in a background goroutine
// - Does not block server startup
func (w *ReportRetentionWorker) Start(ctx context.Context) error {
	logging.Default().Info("report retention worker starting",
		"retention", w.retention.String(),
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReportRetentionWorker) Stop() {
	logging.Default().Info("report retention worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("report retention worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *ReportRetentionWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Initial prune (runs in goroutine, does not block server startup)
	if err := w.prune(ctx); err != nil {
		logging.Default().Error("initial report prune failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.prune(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("report prune failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("report retention worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("report retention worker context cancelled")
			return
		}
	}
}

// prune performs a single prune cycle
func (w *ReportRetentionWorker) prune(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-w.retention)

	deleted, err := w.repo.Report().Prune(ctx, cutoff)
	if err != nil {
		return goerr.Wrap(err, "failed to prune reports", goerr.V("cutoff", cutoff))
	}

	if deleted > 0 {
		logging.Default().Info("pruned expired reports",
			"deleted", deleted,
			"cutoff", cutoff.Format(time.RFC3339))
	}

	return nil
}
