package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/index"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

// Reconciler keeps the platform's trigger set in agreement with the
// alarm collection: at most one live trigger per alarm id, always
// describing the alarm's next actual occurrence under the precedence
// policy. Triggers are never mutated in place; the only way to change
// one is cancel-then-schedule.
type Reconciler struct {
	index    *index.MemoryIndex
	resolver *domain.Resolver
	platform Platform
	sounds   *domain.SoundSet
	logger   logger.Logger
	now      func() time.Time
}

// NewReconciler creates a reconciler. A nil now defaults to time.Now.
func NewReconciler(
	idx *index.MemoryIndex,
	resolver *domain.Resolver,
	platform Platform,
	sounds *domain.SoundSet,
	log logger.Logger,
	now func() time.Time,
) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{
		index:    idx,
		resolver: resolver,
		platform: platform,
		sounds:   sounds,
		logger:   log,
		now:      now,
	}
}

// ScheduleAlarm installs the trigger for an alarm's next occurrence.
// Disabled alarms and alarms with no occurrence inside the lookahead
// horizon install nothing; neither case is an error.
func (r *Reconciler) ScheduleAlarm(ctx context.Context, alarm *domain.Alarm) error {
	return r.scheduleWithin(ctx, alarm, r.index.AllAlarms())
}

// CancelAlarm removes the outstanding trigger for an alarm id.
// Idempotent: cancelling an id without a trigger is a no-op.
func (r *Reconciler) CancelAlarm(ctx context.Context, alarmID string) error {
	if err := r.platform.Cancel(ctx, alarmID); err != nil {
		return fmt.Errorf("failed to cancel trigger: %w", err)
	}
	return nil
}

// CancelAllAlarms removes every outstanding trigger.
func (r *Reconciler) CancelAllAlarms(ctx context.Context) error {
	if err := r.platform.CancelAll(ctx); err != nil {
		return fmt.Errorf("failed to cancel triggers: %w", err)
	}
	return nil
}

// UpdateAlarm is the only supported way to change a trigger: it
// unconditionally cancels the existing one, then reschedules when the
// (possibly just-edited) alarm is enabled. Cancel strictly precedes
// reschedule so two live triggers for one id are never observable.
func (r *Reconciler) UpdateAlarm(ctx context.Context, alarm *domain.Alarm) error {
	if err := r.CancelAlarm(ctx, alarm.ID); err != nil {
		return err
	}

	if !alarm.Enabled {
		return nil
	}
	return r.ScheduleAlarm(ctx, alarm)
}

// RescheduleAllAlarms cancels every outstanding trigger and schedules
// each enabled alarm from the supplied list. Used after bulk data
// migrations and at the daily rollover so stored alarms and live
// triggers never drift apart.
func (r *Reconciler) RescheduleAllAlarms(ctx context.Context, alarms []*domain.Alarm) error {
	if err := r.CancelAllAlarms(ctx); err != nil {
		return err
	}

	scheduled := 0
	for _, alarm := range alarms {
		if !alarm.Enabled {
			continue
		}
		if err := r.scheduleWithin(ctx, alarm, alarms); err != nil {
			return fmt.Errorf("failed to reschedule alarm %s: %w", alarm.ID, err)
		}
		scheduled++
	}

	r.logger.Info("rescheduled all alarms",
		logger.Int("alarms", len(alarms)),
		logger.Int("enabled", scheduled))

	return nil
}

// scheduleWithin schedules one alarm, resolving its next occurrence
// against the supplied full alarm list.
func (r *Reconciler) scheduleWithin(ctx context.Context, alarm *domain.Alarm, all []*domain.Alarm) error {
	if !alarm.Enabled {
		return nil
	}

	fireAt, ok := r.nextFireFor(ctx, alarm, all)
	if !ok {
		r.logger.Debug("no occurrence within horizon, nothing scheduled",
			logger.String("alarm_id", alarm.ID))
		return nil
	}

	trigger := r.buildTrigger(alarm, fireAt)
	if err := r.platform.Install(ctx, trigger); err != nil {
		return fmt.Errorf("failed to install trigger: %w", err)
	}

	r.logger.Info("trigger installed",
		logger.String("alarm_id", alarm.ID),
		logger.Time("fire_at", fireAt),
		logger.String("channel", trigger.Channel))

	return nil
}

// nextFireFor finds the first lookahead day on which this specific
// alarm is the one the precedence policy selects. The daily-repeat
// trigger primitive fires at a fixed wall-clock time, but whether the
// alarm applies varies per day, so the next applicable day has to be
// computed rather than taken from the alarm's raw time.
func (r *Reconciler) nextFireFor(ctx context.Context, alarm *domain.Alarm, all []*domain.Alarm) (time.Time, bool) {
	now := r.now()

	for i := 0; i < domain.LookaheadDays; i++ {
		date := now.AddDate(0, 0, i)

		active := r.resolver.ActiveAlarmForDate(ctx, all, date)
		if active == nil || active.ID != alarm.ID {
			continue
		}

		fireAt, err := alarm.FireTimeOn(date)
		if err != nil {
			return time.Time{}, false
		}
		if i == 0 && fireAt.Before(now) {
			continue
		}
		return fireAt, true
	}

	return time.Time{}, false
}

// buildTrigger derives the platform payload from an alarm.
func (r *Reconciler) buildTrigger(alarm *domain.Alarm, fireAt time.Time) *domain.Trigger {
	title := alarm.Label
	if title == "" {
		title = "Alarm"
	}

	// The stored value is carried as-is (absent becomes the default
	// sentinel); the channel lookup maps default and unknown ids onto
	// the platform default channel.
	sound := alarm.Sound
	if sound == "" {
		sound = domain.DefaultSound
	}

	return &domain.Trigger{
		AlarmID:     alarm.ID,
		FireAt:      fireAt,
		RepeatDaily: true,
		Title:       title,
		Body:        fmt.Sprintf("%s alarm", alarm.Time),
		Sound:       sound,
		Channel:     r.sounds.ChannelFor(sound),
	}
}
