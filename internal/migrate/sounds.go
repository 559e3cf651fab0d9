package migrate

import (
	"context"
	"fmt"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

// AlarmSaver is the slice of the alarm store the migration needs.
type AlarmSaver interface {
	SaveAlarm(ctx context.Context, alarm *domain.Alarm) error
}

// SoundMigration rewrites alarms whose stored sound id is no longer in
// the catalog. Stale ids appear after a catalog change or an import
// from an older installation; the alarm itself stays valid, only the
// sound reference is repaired.
type SoundMigration struct {
	store  AlarmSaver
	sounds *domain.SoundSet
	logger logger.Logger
}

func NewSoundMigration(store AlarmSaver, sounds *domain.SoundSet, log logger.Logger) *SoundMigration {
	return &SoundMigration{
		store:  store,
		sounds: sounds,
		logger: log,
	}
}

// Run normalizes the sound id of every alarm in the slice and persists
// only the ones that changed. It returns the number of repaired alarms.
// The slice is mutated in place so callers keep a consistent view.
func (m *SoundMigration) Run(ctx context.Context, alarms []*domain.Alarm) (int, error) {
	migrated := 0

	for _, alarm := range alarms {
		normalized := m.sounds.Normalize(alarm.Sound)
		if normalized == alarm.Sound {
			continue
		}

		m.logger.Info("migrating alarm sound",
			logger.String("alarm_id", alarm.ID),
			logger.String("from", alarm.Sound),
			logger.String("to", normalized),
		)

		alarm.Sound = normalized
		if err := m.store.SaveAlarm(ctx, alarm); err != nil {
			return migrated, fmt.Errorf("failed to persist migrated alarm %s: %w", alarm.ID, err)
		}
		migrated++
	}

	return migrated, nil
}
