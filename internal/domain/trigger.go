package domain

import "time"

// Trigger is a scheduled platform notification, derived from an alarm
// and never separately authored. At most one live trigger exists per
// alarm id; installing a new one retires the previous one.
type Trigger struct {
	// AlarmID keys the trigger; it doubles as the platform notification id.
	AlarmID string `json:"alarmId"`

	// FireAt is the next absolute fire instant.
	FireAt time.Time `json:"fireAt"`

	// RepeatDaily marks the platform's daily-repeat delivery mode.
	// The repeat is only a delivery mechanism: whether the alarm should
	// actually ring again is re-decided by a fresh reconciliation pass.
	RepeatDaily bool `json:"repeatDaily"`

	// Title and Body are the display payload.
	Title string `json:"title"`
	Body  string `json:"body"`

	// Sound is the normalized sound id; Channel the resolved
	// notification channel for it.
	Sound   string `json:"sound"`
	Channel string `json:"channel"`
}
