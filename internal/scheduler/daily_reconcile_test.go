package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/index"
	"github.com/snoozelab/holiday-alarm/internal/logger"
	"github.com/snoozelab/holiday-alarm/internal/notify"
)

type stubPlatform struct {
	mu         sync.Mutex
	installed  map[string]*domain.Trigger
	cancelAlls int
}

func newStubPlatform() *stubPlatform {
	return &stubPlatform{installed: make(map[string]*domain.Trigger)}
}

func (p *stubPlatform) Install(_ context.Context, trigger *domain.Trigger) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.installed[trigger.AlarmID] = trigger
	return nil
}

func (p *stubPlatform) Cancel(_ context.Context, alarmID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.installed, alarmID)
	return nil
}

func (p *stubPlatform) CancelAll(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.installed = make(map[string]*domain.Trigger)
	p.cancelAlls++
	return nil
}

func (p *stubPlatform) Outstanding(context.Context) ([]*domain.Trigger, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*domain.Trigger, 0, len(p.installed))
	for _, trigger := range p.installed {
		out = append(out, trigger)
	}
	return out, nil
}

func TestDailyReconcileRunInstallsTriggers(t *testing.T) {
	// Monday morning, before the alarms' wall-clock times.
	now := func() time.Time {
		return time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	}
	log := logger.New("error", false)
	idx := index.NewMemoryIndex()
	idx.UpdateAlarms([]*domain.Alarm{
		{
			ID:       "weekday",
			Time:     "07:30",
			Weekdays: domain.Weekdays{Monday: true},
			Enabled:  true,
		},
		{
			ID:       "paused",
			Time:     "08:00",
			Weekdays: domain.Weekdays{Monday: true},
			Enabled:  false,
		},
	})

	platform := newStubPlatform()
	reconciler := notify.NewReconciler(
		idx,
		domain.NewResolver(nil, now),
		platform,
		domain.DefaultSoundSet(),
		log,
		now,
	)
	daily := NewDailyReconciler(reconciler, idx, log, "")

	if err := daily.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if platform.cancelAlls != 1 {
		t.Fatalf("CancelAll calls = %d, want 1 (pass starts from a clean slate)", platform.cancelAlls)
	}
	if len(platform.installed) != 1 {
		t.Fatalf("installed triggers = %d, want 1", len(platform.installed))
	}
	trigger, ok := platform.installed["weekday"]
	if !ok {
		t.Fatal("enabled alarm must have a trigger installed")
	}
	wantFireAt := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)
	if !trigger.FireAt.Equal(wantFireAt) {
		t.Fatalf("FireAt = %v, want %v", trigger.FireAt, wantFireAt)
	}
	if _, ok := platform.installed["paused"]; ok {
		t.Fatal("disabled alarm must not have a trigger installed")
	}
}

func TestDailyReconcileRunReplacesStaleTriggers(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	}
	log := logger.New("error", false)
	idx := index.NewMemoryIndex()
	idx.UpdateAlarms([]*domain.Alarm{
		{
			ID:       "weekday",
			Time:     "07:30",
			Weekdays: domain.Weekdays{Monday: true},
			Enabled:  true,
		},
	})

	platform := newStubPlatform()
	// A leftover trigger for an alarm that no longer exists.
	platform.installed["deleted"] = &domain.Trigger{AlarmID: "deleted"}

	reconciler := notify.NewReconciler(
		idx,
		domain.NewResolver(nil, now),
		platform,
		domain.DefaultSoundSet(),
		log,
		now,
	)
	daily := NewDailyReconciler(reconciler, idx, log, DefaultReconcileSpec)

	if err := daily.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, ok := platform.installed["deleted"]; ok {
		t.Fatal("reconcile pass must drop triggers for vanished alarms")
	}
	if _, ok := platform.installed["weekday"]; !ok {
		t.Fatal("reconcile pass must reinstall the live alarm's trigger")
	}
}

func TestNewDailyReconcilerDefaultsSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{name: "empty spec gets the midnight default", spec: "", want: DefaultReconcileSpec},
		{name: "explicit spec is kept", spec: "30 4 * * *", want: "30 4 * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := NewDailyReconciler(nil, nil, logger.New("error", false), tt.spec)
			if dr.spec != tt.want {
				t.Fatalf("spec = %q, want %q", dr.spec, tt.want)
			}
		})
	}
}
