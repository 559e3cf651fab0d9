package migrate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

type recordingSaver struct {
	saved   []string
	failset map[string]error
}

func (s *recordingSaver) SaveAlarm(_ context.Context, alarm *domain.Alarm) error {
	if err := s.failset[alarm.ID]; err != nil {
		return err
	}
	s.saved = append(s.saved, alarm.ID)
	return nil
}

func testAlarm(id, sound string) *domain.Alarm {
	return &domain.Alarm{
		ID:        id,
		Time:      "07:00",
		Sound:     sound,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
}

func TestSoundMigrationRun(t *testing.T) {
	saver := &recordingSaver{}
	migration := NewSoundMigration(saver, domain.DefaultSoundSet(), logger.New("error", false))

	alarms := []*domain.Alarm{
		testAlarm("a1", "analog_alarm"),       // valid, untouched
		testAlarm("a2", "old_bell"),           // removed from catalog
		testAlarm("a3", domain.DefaultSound),  // sentinel, untouched
		testAlarm("a4", ""),                   // absent
		testAlarm("a5", "digital_alarm"),      // valid, untouched
	}

	count, err := migration.Run(context.Background(), alarms)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"a2", "a4"}, saver.saved)

	assert.Equal(t, domain.PreferredDefaultSound, alarms[1].Sound)
	assert.Equal(t, domain.PreferredDefaultSound, alarms[3].Sound)
	assert.Equal(t, "analog_alarm", alarms[0].Sound)
	assert.Equal(t, domain.DefaultSound, alarms[2].Sound)
}

func TestSoundMigrationRunNothingToDo(t *testing.T) {
	saver := &recordingSaver{}
	migration := NewSoundMigration(saver, domain.DefaultSoundSet(), logger.New("error", false))

	alarms := []*domain.Alarm{
		testAlarm("a1", "analog_alarm"),
		testAlarm("a2", domain.DefaultSound),
	}

	count, err := migration.Run(context.Background(), alarms)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, saver.saved)
}

func TestSoundMigrationRunPersistFailure(t *testing.T) {
	boom := errors.New("redis down")
	saver := &recordingSaver{failset: map[string]error{"a2": boom}}
	migration := NewSoundMigration(saver, domain.DefaultSoundSet(), logger.New("error", false))

	alarms := []*domain.Alarm{
		testAlarm("a1", "gone"),
		testAlarm("a2", "also_gone"),
	}

	count, err := migration.Run(context.Background(), alarms)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count, "alarms repaired before the failure still count")
}
