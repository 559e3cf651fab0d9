package redis

import "strconv"

const (
	// KeyPrefixAlarm is the prefix for alarm record keys
	KeyPrefixAlarm = "halarm:alarm:"
	// KeyAllAlarms is the key for the set of all alarm IDs
	KeyAllAlarms = "halarm:alarms:all"
	// KeyPrefixTrigger is the prefix for outstanding trigger keys
	KeyPrefixTrigger = "halarm:trigger:"
	// KeyAllTriggers is the key for the set of alarm IDs with a live trigger
	KeyAllTriggers = "halarm:triggers:all"
	// KeyPrefixHolidayYear is the prefix of the multi-year holiday store
	KeyPrefixHolidayYear = "halarm:holidays:year:"
	// KeyHolidayLegacy is the legacy single-year holiday record
	KeyHolidayLegacy = "halarm:holidays:legacy"
)

// AlarmKey returns the Redis key for an alarm by ID
func AlarmKey(id string) string {
	return KeyPrefixAlarm + id
}

// TriggerKey returns the Redis key for an outstanding trigger by alarm ID
func TriggerKey(alarmID string) string {
	return KeyPrefixTrigger + alarmID
}

// HolidayYearKey returns the Redis key of one multi-year store entry
func HolidayYearKey(year int) string {
	return KeyPrefixHolidayYear + strconv.Itoa(year)
}
