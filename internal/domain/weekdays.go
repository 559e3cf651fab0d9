package domain

import "time"

// Weekdays is the set of recurrence switches on an alarm: the seven
// calendar weekdays plus the distinguished holiday flag. The holiday
// flag means "also recurs on public holidays" and overrides the plain
// weekday selection for holiday dates.
type Weekdays struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
	Holiday   bool `json:"holiday"`
}

// FlagFor returns the recurrence flag for a calendar weekday.
func (w Weekdays) FlagFor(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	}
	return false
}

// Any reports whether at least one recurrence flag is set.
func (w Weekdays) Any() bool {
	return w.Monday || w.Tuesday || w.Wednesday || w.Thursday ||
		w.Friday || w.Saturday || w.Sunday || w.Holiday
}

// IsWeekend reports whether a weekday is Saturday or Sunday.
func IsWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
