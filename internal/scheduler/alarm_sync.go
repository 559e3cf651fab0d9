package scheduler

import (
	"context"

	"github.com/snoozelab/holiday-alarm/internal/index"
	"github.com/snoozelab/holiday-alarm/internal/logger"
	redisstore "github.com/snoozelab/holiday-alarm/internal/store/redis"
)

// AlarmSyncer hydrates the memory index from redis on startup
type AlarmSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewAlarmSyncer creates a new alarm syncer
func NewAlarmSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *AlarmSyncer {
	return &AlarmSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads alarms from redis and replaces the memory index contents
func (as *AlarmSyncer) Sync(ctx context.Context) error {
	as.logger.Info("syncing alarms from redis to memory")

	alarms, err := as.store.GetAllAlarms(ctx)
	if err != nil {
		return err
	}

	if len(alarms) == 0 {
		as.logger.Info("no alarms found in redis")
		return nil
	}

	as.index.UpdateAlarms(alarms)

	as.logger.Info("synced alarms from redis",
		logger.Int("count", len(alarms)))

	return nil
}
