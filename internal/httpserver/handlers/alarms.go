package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

type alarmRequest struct {
	Time             string          `json:"time"`
	Label            string          `json:"label"`
	Weekdays         domain.Weekdays `json:"weekdays"`
	Sound            string          `json:"sound"`
	DisableOnHoliday bool            `json:"disable_on_holiday"`
	Enabled          *bool           `json:"enabled"`
}

func (req *alarmRequest) validate(d deps.Deps) string {
	if _, _, err := domain.ParseClock(req.Time); err != nil {
		return "time must be HH:MM"
	}
	if !req.Weekdays.Any() {
		return "at least one recurrence day is required"
	}
	if req.Sound != "" && req.Sound != domain.DefaultSound && !d.Sounds.IsValid(req.Sound) {
		return "unknown sound id"
	}
	return ""
}

// CreateAlarm persists a new alarm and installs its trigger.
func CreateAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req alarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if msg := req.validate(d); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}

		alarm, err := domain.NewAlarm(req.Time, req.Label, req.Weekdays, req.Sound)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		alarm.DisableOnHoliday = req.DisableOnHoliday
		if req.Enabled != nil {
			alarm.Enabled = *req.Enabled
		}

		ctx := r.Context()
		if err := d.Store.SaveAlarm(ctx, alarm); err != nil {
			d.Logger.Error("failed to save alarm", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to save alarm")
			return
		}
		d.MemoryIndex.AddAlarm(alarm)

		if err := d.Reconciler.ScheduleAlarm(ctx, alarm); err != nil {
			d.Logger.Error("failed to schedule alarm",
				logger.String("alarm_id", alarm.ID),
				logger.Error(err))
		}

		respondJSON(w, http.StatusCreated, alarm)
	}
}

// ListAlarms returns every alarm in creation order.
func ListAlarms(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, d.MemoryIndex.AllAlarms())
	}
}

// GetAlarm returns a single alarm by id.
func GetAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		alarm, ok := d.MemoryIndex.GetAlarm(id)
		if !ok {
			respondError(w, http.StatusNotFound, "alarm not found")
			return
		}
		respondJSON(w, http.StatusOK, alarm)
	}
}

// UpdateAlarm applies an edit and reconciles the trigger through
// cancel-then-schedule.
func UpdateAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existing, ok := d.MemoryIndex.GetAlarm(id)
		if !ok {
			respondError(w, http.StatusNotFound, "alarm not found")
			return
		}

		var req alarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if msg := req.validate(d); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}

		updated := *existing
		updated.Time = req.Time
		updated.Label = req.Label
		updated.Weekdays = req.Weekdays
		updated.Sound = req.Sound
		updated.DisableOnHoliday = req.DisableOnHoliday
		if req.Enabled != nil {
			updated.Enabled = *req.Enabled
		}

		ctx := r.Context()
		if err := d.Store.SaveAlarm(ctx, &updated); err != nil {
			d.Logger.Error("failed to save alarm", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to save alarm")
			return
		}
		d.MemoryIndex.AddAlarm(&updated)

		if err := d.Reconciler.UpdateAlarm(ctx, &updated); err != nil {
			d.Logger.Error("failed to reconcile alarm trigger",
				logger.String("alarm_id", updated.ID),
				logger.Error(err))
		}

		respondJSON(w, http.StatusOK, &updated)
	}
}

// ToggleAlarm flips the enabled flag.
func ToggleAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existing, ok := d.MemoryIndex.GetAlarm(id)
		if !ok {
			respondError(w, http.StatusNotFound, "alarm not found")
			return
		}

		updated := *existing
		updated.Enabled = !updated.Enabled

		ctx := r.Context()
		if err := d.Store.SaveAlarm(ctx, &updated); err != nil {
			d.Logger.Error("failed to save alarm", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to save alarm")
			return
		}
		d.MemoryIndex.AddAlarm(&updated)

		if err := d.Reconciler.UpdateAlarm(ctx, &updated); err != nil {
			d.Logger.Error("failed to reconcile alarm trigger",
				logger.String("alarm_id", updated.ID),
				logger.Error(err))
		}

		d.Logger.Info("alarm toggled",
			logger.String("alarm_id", updated.ID),
			logger.Bool("enabled", updated.Enabled))

		respondJSON(w, http.StatusOK, &updated)
	}
}

// DeleteAlarm removes the alarm and cancels its trigger.
func DeleteAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx := r.Context()

		if _, ok := d.MemoryIndex.GetAlarm(id); !ok {
			respondError(w, http.StatusNotFound, "alarm not found")
			return
		}

		if err := d.Store.DeleteAlarm(ctx, id); err != nil {
			d.Logger.Error("failed to delete alarm", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to delete alarm")
			return
		}
		d.MemoryIndex.DeleteAlarm(id)

		if err := d.Reconciler.CancelAlarm(ctx, id); err != nil {
			d.Logger.Error("failed to cancel alarm trigger",
				logger.String("alarm_id", id),
				logger.Error(err))
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RescheduleAlarms rebuilds the full trigger set on demand.
func RescheduleAlarms(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alarms := d.MemoryIndex.AllAlarms()
		if err := d.Reconciler.RescheduleAllAlarms(r.Context(), alarms); err != nil {
			d.Logger.Error("failed to reschedule alarms", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to reschedule alarms")
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"alarms": len(alarms)})
	}
}
