package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Alarm represents a single recurring alarm.
type Alarm struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, assigned at creation.
	ID string `json:"id"`

	// ─────────────────────────────
	// Schedule
	// ─────────────────────────────

	// Time is the wall-clock firing time in "HH:MM" form.
	// No date, no timezone: it is combined with a calendar date
	// (and that date's location) at resolution time.
	Time string `json:"time"`

	// Weekdays holds the recurrence flags (seven days + holiday).
	Weekdays Weekdays `json:"weekdays"`

	// DisableOnHoliday opts this alarm out of firing on public
	// holidays even when its weekday flag would otherwise match.
	DisableOnHoliday bool `json:"disableOnHoliday"`

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	// Label is free display text, may be empty.
	Label string `json:"label"`

	// Sound identifies an entry in the known sound set.
	// Unknown or absent values fall back to the preferred default.
	Sound string `json:"sound"`

	// ─────────────────────────────
	// State & metadata
	// ─────────────────────────────

	// Enabled gates all resolution and scheduling for this alarm.
	Enabled bool `json:"enabled"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAlarm builds an enabled alarm with a fresh id and the preferred
// default sound. It returns an error when clock is not a valid "HH:MM"
// string; that is a caller contract violation, not a runtime condition.
func NewAlarm(clock, label string, weekdays Weekdays, sound string) (*Alarm, error) {
	if _, _, err := ParseClock(clock); err != nil {
		return nil, err
	}

	if sound == "" {
		sound = PreferredDefaultSound
	}

	now := time.Now()
	return &Alarm{
		ID:        uuid.NewString(),
		Time:      clock,
		Label:     label,
		Enabled:   true,
		Weekdays:  weekdays,
		Sound:     sound,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ParseClock parses a wall-clock "HH:MM" string.
func ParseClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q: want HH:MM", clock)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock hour in %q", clock)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock minute in %q", clock)
	}

	return hour, minute, nil
}

// FireTimeOn combines the alarm's wall-clock time with a calendar date,
// in that date's location.
func (a *Alarm) FireTimeOn(date time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(a.Time)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		hour, minute, 0, 0, date.Location()), nil
}
