package index

import (
	"testing"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
)

func alarmAt(id string, created time.Time) *domain.Alarm {
	return &domain.Alarm{
		ID:        id,
		Time:      "07:00",
		Enabled:   true,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMemoryIndexCRUD(t *testing.T) {
	idx := NewMemoryIndex()
	now := time.Now()

	if idx.Count() != 0 {
		t.Fatalf("new index Count() = %d, want 0", idx.Count())
	}

	idx.AddAlarm(alarmAt("a", now))
	idx.AddAlarm(alarmAt("b", now.Add(time.Second)))

	if idx.Count() != 2 {
		t.Errorf("Count() = %d, want 2", idx.Count())
	}

	if _, ok := idx.GetAlarm("a"); !ok {
		t.Error("GetAlarm(a) should find the alarm")
	}

	idx.DeleteAlarm("a")
	if _, ok := idx.GetAlarm("a"); ok {
		t.Error("GetAlarm(a) should miss after delete")
	}
	if idx.Count() != 1 {
		t.Errorf("Count() after delete = %d, want 1", idx.Count())
	}
}

func TestMemoryIndexUpdateAlarmsReplacesAll(t *testing.T) {
	idx := NewMemoryIndex()
	now := time.Now()

	idx.AddAlarm(alarmAt("stale", now))
	idx.UpdateAlarms([]*domain.Alarm{alarmAt("fresh", now)})

	if _, ok := idx.GetAlarm("stale"); ok {
		t.Error("UpdateAlarms() should drop entries absent from the new set")
	}
	if _, ok := idx.GetAlarm("fresh"); !ok {
		t.Error("UpdateAlarms() should contain the new set")
	}
	if idx.GetLastSync().IsZero() {
		t.Error("UpdateAlarms() should record the sync time")
	}
}

func TestMemoryIndexAllAlarmsOrdering(t *testing.T) {
	idx := NewMemoryIndex()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	idx.AddAlarm(alarmAt("z-newest", base.Add(2*time.Hour)))
	idx.AddAlarm(alarmAt("b-oldest", base))
	idx.AddAlarm(alarmAt("m-tied", base.Add(time.Hour)))
	idx.AddAlarm(alarmAt("a-tied", base.Add(time.Hour)))

	got := idx.AllAlarms()
	want := []string{"b-oldest", "a-tied", "m-tied", "z-newest"}

	if len(got) != len(want) {
		t.Fatalf("AllAlarms() length = %d, want %d", len(got), len(want))
	}
	for i, alarm := range got {
		if alarm.ID != want[i] {
			t.Errorf("AllAlarms()[%d] = %q, want %q", i, alarm.ID, want[i])
		}
	}
}
