package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/snoozelab/holiday-alarm/internal/index"
	"github.com/snoozelab/holiday-alarm/internal/logger"
	"github.com/snoozelab/holiday-alarm/internal/notify"
)

// DefaultReconcileSpec runs the nightly pass at midnight, right after
// the date flips and yesterday's triggers have fired or expired.
const DefaultReconcileSpec = "0 0 * * *"

// DailyReconciler rebuilds the full trigger set on a cron schedule.
// Triggers installed yesterday described yesterday's precedence
// outcome; a new day can promote a weekend or holiday alarm over the
// one currently scheduled, so the whole set is recomputed.
type DailyReconciler struct {
	reconciler *notify.Reconciler
	index      *index.MemoryIndex
	logger     logger.Logger
	spec       string
	cron       *cron.Cron
}

// NewDailyReconciler creates a new daily reconciler
func NewDailyReconciler(
	reconciler *notify.Reconciler,
	idx *index.MemoryIndex,
	log logger.Logger,
	spec string,
) *DailyReconciler {
	if spec == "" {
		spec = DefaultReconcileSpec
	}
	return &DailyReconciler{
		reconciler: reconciler,
		index:      idx,
		logger:     log,
		spec:       spec,
	}
}

// Start registers the cron entry and launches the scheduler.
func (dr *DailyReconciler) Start(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(dr.spec, func() {
		if err := dr.Run(ctx); err != nil {
			dr.logger.Error("daily reconcile failed",
				logger.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register reconcile schedule %q: %w", dr.spec, err)
	}

	c.Start()
	dr.cron = c

	dr.logger.Info("daily reconcile scheduled",
		logger.String("spec", dr.spec))

	return nil
}

// Stop stops the cron scheduler and waits for a running pass to finish.
func (dr *DailyReconciler) Stop() {
	if dr.cron == nil {
		return
	}
	<-dr.cron.Stop().Done()
}

// Run executes one reconcile pass over every alarm in the index.
func (dr *DailyReconciler) Run(ctx context.Context) error {
	return dr.reconciler.RescheduleAllAlarms(ctx, dr.index.AllAlarms())
}
