package domain

import (
	"strconv"
	"time"
)

// holidayTrue is the source-provided marker for actual-holiday entries.
// The data source also lists commemorative days with "N"; those are
// filtered out at ingestion and never cached.
const holidayTrue = "Y"

// Holiday is one public holiday entry as delivered by the data source.
type Holiday struct {
	// Date is the calendar day as an 8-digit YYYYMMDD integer.
	Date int `json:"locdate"`

	// Name is the holiday's display name.
	Name string `json:"dateName"`

	// Kind is the source's classification (national day, public holiday, ...).
	Kind string `json:"dateKind"`

	// IsHoliday is the source flag ("Y"/"N") used only at ingestion.
	IsHoliday string `json:"isHoliday"`

	// Seq is the source-provided ordinal within the day.
	Seq int `json:"seq"`
}

// Actual reports whether the entry is a real holiday per the source flag.
func (h Holiday) Actual() bool {
	return h.IsHoliday == holidayTrue
}

// Key returns the YYYYMMDD lookup key for this holiday.
func (h Holiday) Key() string {
	return strconv.Itoa(h.Date)
}

// Year returns the calendar year encoded in the holiday date.
func (h Holiday) Year() int {
	return h.Date / 10000
}

// DateKey formats a time as the YYYYMMDD lookup key used by the holiday cache.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}
