package handlers

import (
	"net/http"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

// ListTriggers returns every outstanding trigger.
func ListTriggers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		triggers, err := d.Store.GetAllTriggers(r.Context())
		if err != nil {
			d.Logger.Error("failed to list triggers", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to list triggers")
			return
		}
		if triggers == nil {
			triggers = []*domain.Trigger{}
		}
		respondJSON(w, http.StatusOK, triggers)
	}
}

// CancelAllTriggers wipes the outstanding trigger set without touching
// the alarms themselves.
func CancelAllTriggers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Reconciler.CancelAllAlarms(r.Context()); err != nil {
			d.Logger.Error("failed to cancel triggers", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to cancel triggers")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
