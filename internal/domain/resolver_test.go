package domain

import (
	"context"
	"testing"
	"time"
)

// fakeHolidays marks a fixed set of YYYYMMDD keys as holidays.
type fakeHolidays struct {
	dates map[string]bool
}

func (f *fakeHolidays) IsHoliday(_ context.Context, date time.Time) bool {
	return f.dates[DateKey(date)]
}

func holidaysOn(dates ...time.Time) *fakeHolidays {
	f := &fakeHolidays{dates: make(map[string]bool, len(dates))}
	for _, d := range dates {
		f.dates[DateKey(d)] = true
	}
	return f
}

func testAlarm(id, clock string, weekdays Weekdays) *Alarm {
	return &Alarm{
		ID:       id,
		Time:     clock,
		Enabled:  true,
		Weekdays: weekdays,
		Sound:    PreferredDefaultSound,
	}
}

func at(t *testing.T, date time.Time, clock string) time.Time {
	t.Helper()
	hour, minute, err := ParseClock(clock)
	if err != nil {
		t.Fatalf("bad clock %q: %v", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

var (
	// 2026-01-05 is a Monday, 2026-01-06 a Tuesday,
	// 2026-01-10 a Saturday, 2026-01-11 a Sunday.
	monday   = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
)

func TestActiveAlarmForDatePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		alarms   []*Alarm
		date     time.Time
		now      time.Time
		holidays *fakeHolidays
		wantID   string
	}{
		{
			name: "ordinary weekday picks flagged alarm",
			alarms: []*Alarm{
				testAlarm("mon", "08:00", Weekdays{Monday: true}),
				testAlarm("tue", "07:00", Weekdays{Tuesday: true}),
			},
			date:     monday,
			now:      at(t, monday, "06:00"),
			holidays: holidaysOn(),
			wantID:   "mon",
		},
		{
			name: "holiday suppresses weekday alarm without holiday flag",
			alarms: []*Alarm{
				testAlarm("mon", "08:00", Weekdays{Monday: true}),
			},
			date:     monday,
			now:      at(t, monday, "06:00"),
			holidays: holidaysOn(monday),
			wantID:   "",
		},
		{
			name: "holiday-flagged alarm rings on holiday monday",
			alarms: []*Alarm{
				testAlarm("mon", "08:00", Weekdays{Monday: true, Holiday: true}),
			},
			date:     monday,
			now:      at(t, monday, "06:00"),
			holidays: holidaysOn(monday),
			wantID:   "mon",
		},
		{
			name: "disableOnHoliday opts out even with holiday flag",
			alarms: []*Alarm{
				func() *Alarm {
					a := testAlarm("optout", "08:00", Weekdays{Monday: true, Holiday: true})
					a.DisableOnHoliday = true
					return a
				}(),
			},
			date:     monday,
			now:      at(t, monday, "06:00"),
			holidays: holidaysOn(monday),
			wantID:   "",
		},
		{
			name: "weekend flag dominates holiday on saturday",
			alarms: []*Alarm{
				testAlarm("weekend", "09:00", Weekdays{Saturday: true}),
				testAlarm("holiday", "07:00", Weekdays{Holiday: true}),
			},
			date:     saturday,
			now:      at(t, saturday, "06:00"),
			holidays: holidaysOn(saturday),
			wantID:   "weekend",
		},
		{
			name: "sunday weekend flag dominates holiday",
			alarms: []*Alarm{
				testAlarm("weekend", "09:30", Weekdays{Sunday: true}),
				testAlarm("holiday", "07:00", Weekdays{Holiday: true}),
			},
			date:     sunday,
			now:      at(t, sunday, "06:00"),
			holidays: holidaysOn(sunday),
			wantID:   "weekend",
		},
		{
			name: "weekend set exists but all past yields none, no fallthrough",
			alarms: []*Alarm{
				testAlarm("weekend", "06:00", Weekdays{Saturday: true}),
				testAlarm("holiday", "23:00", Weekdays{Holiday: true}),
			},
			date:     saturday,
			now:      at(t, saturday, "12:00"),
			holidays: holidaysOn(saturday),
			wantID:   "",
		},
		{
			name: "holiday with no qualifying alarm yields none despite weekday match",
			alarms: []*Alarm{
				testAlarm("mon-a", "07:00", Weekdays{Monday: true}),
				testAlarm("mon-b", "08:00", Weekdays{Monday: true}),
			},
			date:     monday,
			now:      at(t, monday, "06:00"),
			holidays: holidaysOn(monday),
			wantID:   "",
		},
		{
			name: "disabled alarms never considered",
			alarms: []*Alarm{
				func() *Alarm {
					a := testAlarm("off", "08:00", Weekdays{Monday: true})
					a.Enabled = false
					return a
				}(),
			},
			date:     monday,
			now:      at(t, monday, "06:00"),
			holidays: holidaysOn(),
			wantID:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.holidays, func() time.Time { return tt.now })
			got := r.ActiveAlarmForDate(context.Background(), tt.alarms, tt.date)

			if tt.wantID == "" {
				if got != nil {
					t.Fatalf("ActiveAlarmForDate() = %q, want none", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("ActiveAlarmForDate() = none, want %q", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("ActiveAlarmForDate() = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestActiveAlarmForDateEarliestTime(t *testing.T) {
	alarms := []*Alarm{
		testAlarm("early", "07:00", Weekdays{Tuesday: true}),
		testAlarm("late", "07:30", Weekdays{Tuesday: true}),
	}

	tests := []struct {
		name   string
		now    string
		wantID string
	}{
		{name: "before both picks earliest", now: "06:00", wantID: "early"},
		{name: "between picks the remaining one", now: "07:15", wantID: "late"},
		{name: "after both yields none for the day", now: "08:00", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := at(t, tuesday, tt.now)
			r := NewResolver(holidaysOn(), func() time.Time { return now })
			got := r.ActiveAlarmForDate(context.Background(), alarms, tuesday)

			gotID := ""
			if got != nil {
				gotID = got.ID
			}
			if gotID != tt.wantID {
				t.Errorf("ActiveAlarmForDate() = %q, want %q", gotID, tt.wantID)
			}
		})
	}
}

func TestActiveAlarmForDateTieBreakIsInputOrder(t *testing.T) {
	first := testAlarm("first", "07:00", Weekdays{Monday: true})
	second := testAlarm("second", "07:00", Weekdays{Monday: true})

	now := at(t, monday, "06:00")
	r := NewResolver(holidaysOn(), func() time.Time { return now })

	got := r.ActiveAlarmForDate(context.Background(), []*Alarm{first, second}, monday)
	if got == nil || got.ID != "first" {
		t.Fatalf("tie should resolve to input order, got %+v", got)
	}

	got = r.ActiveAlarmForDate(context.Background(), []*Alarm{second, first}, monday)
	if got == nil || got.ID != "second" {
		t.Fatalf("tie should resolve to input order, got %+v", got)
	}
}

func TestNextAlarm(t *testing.T) {
	t.Run("advances past an exhausted today", func(t *testing.T) {
		alarms := []*Alarm{
			testAlarm("early", "07:00", Weekdays{Tuesday: true, Wednesday: true}),
			testAlarm("late", "07:30", Weekdays{Tuesday: true}),
		}

		now := at(t, tuesday, "08:00")
		r := NewResolver(holidaysOn(), func() time.Time { return now })

		next := r.NextAlarm(context.Background(), alarms)
		if next == nil {
			t.Fatal("NextAlarm() = none, want wednesday occurrence")
		}
		if next.Alarm.ID != "early" {
			t.Errorf("NextAlarm() alarm = %q, want %q", next.Alarm.ID, "early")
		}
		wednesday := tuesday.AddDate(0, 0, 1)
		if want := at(t, wednesday, "07:00"); !next.FireAt.Equal(want) {
			t.Errorf("NextAlarm() fireAt = %v, want %v", next.FireAt, want)
		}
	})

	t.Run("empty horizon yields none", func(t *testing.T) {
		alarms := []*Alarm{
			testAlarm("never", "07:00", Weekdays{}),
		}

		now := at(t, monday, "06:00")
		r := NewResolver(holidaysOn(), func() time.Time { return now })

		if next := r.NextAlarm(context.Background(), alarms); next != nil {
			t.Fatalf("NextAlarm() = %+v, want none", next)
		}
	})

	t.Run("same-day future occurrence wins", func(t *testing.T) {
		alarms := []*Alarm{
			testAlarm("today", "09:00", Weekdays{Monday: true}),
		}

		now := at(t, monday, "06:00")
		r := NewResolver(holidaysOn(), func() time.Time { return now })

		next := r.NextAlarm(context.Background(), alarms)
		if next == nil {
			t.Fatal("NextAlarm() = none, want today's occurrence")
		}
		if want := at(t, monday, "09:00"); !next.FireAt.Equal(want) {
			t.Errorf("NextAlarm() fireAt = %v, want %v", next.FireAt, want)
		}
	})
}
