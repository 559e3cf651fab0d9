package scheduler

import (
	"context"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/holiday"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

// HolidayRefresher keeps the holiday cache covering the current and
// upcoming year, and keeps what is loaded fresh. The periodic pass
// picks up the year rollover (once January arrives, "next year" points
// one year further) and refetches years whose data aged past the cache
// freshness window, so late-announced substitute holidays reach a
// long-running process.
type HolidayRefresher struct {
	cache         *holiday.Cache
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewHolidayRefresher creates a new holiday refresher
func NewHolidayRefresher(
	cache *holiday.Cache,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
	now func() time.Time,
) *HolidayRefresher {
	if now == nil {
		now = time.Now
	}
	return &HolidayRefresher{
		cache:         cache,
		logger:        log,
		interval:      interval,
		now:           now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh process. The initial load happens
// in cache.Initialize during boot; the ticks retry failed loads and
// age out stale years.
func (hr *HolidayRefresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(hr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := hr.Refresh(ctx); err != nil {
					hr.logger.Error("failed to refresh holidays",
						logger.Error(err))
				}
			case <-hr.manualTrigger:
				hr.logger.Info("manual holiday refresh triggered")
				if err := hr.Refresh(ctx); err != nil {
					hr.logger.Error("failed to refresh holidays",
						logger.Error(err))
				}
			case <-hr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (hr *HolidayRefresher) Stop() {
	close(hr.stopCh)
}

// Refresh ensures the current and next year are loaded, then refetches
// any loaded year whose data outlived its freshness window. Both halves
// run even when one fails so a missing year and a stale year cannot
// shadow each other.
func (hr *HolidayRefresher) Refresh(ctx context.Context) error {
	year := hr.now().Year()
	ensureErr := hr.cache.EnsureYears(ctx, year, year+1)

	if err := hr.cache.RefreshStale(ctx); err != nil {
		return err
	}
	return ensureErr
}
