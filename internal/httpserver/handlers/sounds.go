package handlers

import (
	"net/http"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
)

// ListSounds returns the alarm sound catalog.
func ListSounds(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, d.Sounds.All())
	}
}
