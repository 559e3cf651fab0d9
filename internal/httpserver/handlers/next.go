package handlers

import (
	"net/http"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
)

type nextAlarmResponse struct {
	AlarmID string    `json:"alarm_id"`
	Label   string    `json:"label,omitempty"`
	Time    string    `json:"time"`
	FireAt  time.Time `json:"fire_at"`
}

// NextAlarm returns the next occurrence of any alarm inside the
// lookahead window, or 204 when the window is empty.
func NextAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := d.Resolver.NextAlarm(r.Context(), d.MemoryIndex.AllAlarms())
		if next == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		respondJSON(w, http.StatusOK, nextAlarmResponse{
			AlarmID: next.Alarm.ID,
			Label:   next.Alarm.Label,
			Time:    next.Alarm.Time,
			FireAt:  next.FireAt,
		})
	}
}
