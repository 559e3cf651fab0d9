package domain

import (
	"context"
	"sort"
	"time"
)

// LookaheadDays is the scan window for finding the next occurrence of
// any alarm. Alarms repeat weekly in the worst case, so a valid next
// occurrence always appears within one week.
const LookaheadDays = 7

// HolidayChecker answers whether a calendar date is a public holiday.
// Implementations degrade to false when holiday data is unavailable.
type HolidayChecker interface {
	IsHoliday(ctx context.Context, date time.Time) bool
}

// NextOccurrence is the result of a lookahead scan: the alarm that
// fires next and its absolute fire instant.
type NextOccurrence struct {
	Alarm  *Alarm
	FireAt time.Time
}

// Resolver decides which single alarm, if any, is active on a given
// calendar date. It is a pure function of its inputs plus the injected
// clock; it never fails and never mutates the alarms it reads.
type Resolver struct {
	holidays HolidayChecker
	now      func() time.Time
}

// NewResolver builds a resolver. A nil now defaults to time.Now.
func NewResolver(holidays HolidayChecker, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		holidays: holidays,
		now:      now,
	}
}

// ActiveAlarmForDate returns the alarm that should ring on date, or nil.
//
// Precedence, first match wins:
//  1. Weekend priority: on Saturday/Sunday, enabled alarms with that
//     day's flag win over all holiday and weekday logic. If any such
//     alarm exists the decision is made inside this set, even when all
//     of its times have already passed.
//  2. Holiday override: on a public holiday, only enabled alarms with
//     DisableOnHoliday unset and the holiday flag set may ring. When
//     none qualify the result is nil; holiday status never falls
//     through to plain weekday alarms.
//  3. Ordinary weekday: enabled alarms with the date's weekday flag set.
//
// Within the winning candidate set the earliest strictly-future time of
// day is chosen; exact ties resolve to input order.
func (r *Resolver) ActiveAlarmForDate(ctx context.Context, alarms []*Alarm, date time.Time) *Alarm {
	enabled := make([]*Alarm, 0, len(alarms))
	for _, alarm := range alarms {
		if alarm.Enabled {
			enabled = append(enabled, alarm)
		}
	}
	if len(enabled) == 0 {
		return nil
	}

	day := date.Weekday()

	// 1. Weekend priority
	if IsWeekend(day) {
		weekend := filterByFlag(enabled, day)
		if len(weekend) > 0 {
			return r.earliestAlarm(weekend, date)
		}
	}

	// 2. Holiday override
	if r.holidays != nil && r.holidays.IsHoliday(ctx, date) {
		candidates := make([]*Alarm, 0, len(enabled))
		for _, alarm := range enabled {
			if !alarm.DisableOnHoliday && alarm.Weekdays.Holiday {
				candidates = append(candidates, alarm)
			}
		}
		if len(candidates) > 0 {
			return r.earliestAlarm(candidates, date)
		}
		return nil
	}

	// 3. Ordinary weekday
	return r.earliestAlarm(filterByFlag(enabled, day), date)
}

// NextAlarm scans the lookahead horizon starting today and returns the
// first occurrence of any alarm, or nil when the full horizon is empty.
func (r *Resolver) NextAlarm(ctx context.Context, alarms []*Alarm) *NextOccurrence {
	now := r.now()

	for i := 0; i < LookaheadDays; i++ {
		date := now.AddDate(0, 0, i)

		alarm := r.ActiveAlarmForDate(ctx, alarms, date)
		if alarm == nil {
			continue
		}

		fireAt, err := alarm.FireTimeOn(date)
		if err != nil {
			continue
		}

		// Today but already rang: advance to the next matching day.
		if i == 0 && fireAt.Before(now) {
			continue
		}

		return &NextOccurrence{Alarm: alarm, FireAt: fireAt}
	}

	return nil
}

// earliestAlarm picks the candidate whose fire time on date is the
// smallest instant strictly after now. Ties keep input order (stable
// sort), which is the documented tie-break.
func (r *Resolver) earliestAlarm(alarms []*Alarm, date time.Time) *Alarm {
	if len(alarms) == 0 {
		return nil
	}

	now := r.now()

	type occurrence struct {
		alarm  *Alarm
		fireAt time.Time
	}

	future := make([]occurrence, 0, len(alarms))
	for _, alarm := range alarms {
		fireAt, err := alarm.FireTimeOn(date)
		if err != nil {
			// Malformed clock strings are rejected at the API boundary;
			// a record that slipped through simply never wins.
			continue
		}
		if fireAt.After(now) {
			future = append(future, occurrence{alarm: alarm, fireAt: fireAt})
		}
	}
	if len(future) == 0 {
		return nil
	}

	sort.SliceStable(future, func(i, j int) bool {
		return future[i].fireAt.Before(future[j].fireAt)
	})

	return future[0].alarm
}

// filterByFlag returns the alarms whose flag for day is set.
func filterByFlag(alarms []*Alarm, day time.Weekday) []*Alarm {
	out := make([]*Alarm, 0, len(alarms))
	for _, alarm := range alarms {
		if alarm.Weekdays.FlagFor(day) {
			out = append(out, alarm)
		}
	}
	return out
}
