package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

type holidayEntry struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func yearParam(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 2200 {
		return 0, false
	}
	return year, true
}

// ListHolidays returns the public holidays of a year, loading the year
// into the cache if needed. A cold cache with an unreachable provider
// yields an empty list, not an error.
func ListHolidays(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := yearParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid year")
			return
		}

		entries := []holidayEntry{}
		for _, h := range d.Cache.HolidaysForYear(r.Context(), year) {
			entries = append(entries, holidayEntry{
				Date: strconv.Itoa(h.Date),
				Name: h.Name,
			})
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// HolidayCacheStatus reports which years are loaded.
func HolidayCacheStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, d.Cache.CacheStatus())
	}
}

// RefreshHolidays triggers the periodic refresh pass out of band.
func RefreshHolidays(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual holiday refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			respondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
		default:
			d.Logger.Warn("holiday refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			respondError(w, http.StatusTooManyRequests, "refresh already in progress")
		}
	}
}

// RefreshHolidayYear forces a refetch of one year from the provider.
// The fetch runs out of band so the request is not held hostage to the
// provider's latency.
func RefreshHolidayYear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := yearParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid year")
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := d.Cache.RefreshYear(ctx, year); err != nil {
				d.Logger.Error("forced holiday refresh failed",
					logger.Int("year", year),
					logger.Error(err))
			}
		}()

		respondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
	}
}
