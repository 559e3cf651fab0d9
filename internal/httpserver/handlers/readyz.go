package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Redis bool   `json:"redis"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the service can serve alarm traffic. Redis is
// the only hard dependency; the holiday cache degrades gracefully.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.RedisClient.Ping(ctx).Err(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Redis: false,
				Error: err.Error(),
			})
			return
		}

		respondJSON(w, http.StatusOK, readyzResponse{Ready: true, Redis: true})
	}
}
