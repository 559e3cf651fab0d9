package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/handlers"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/mw"
)

func init() { Register(registerHolidays) }

func registerHolidays(r chi.Router, d deps.Deps) {
	// Refresh endpoints fan out to the external provider, so they are
	// throttled harder than plain reads.
	refreshLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             3,
		RefillPerIPPerMin: 2,
		MaxEntries:        1024,
		IdleTTL:           15 * time.Minute,
	})

	r.Route("/holidays", func(r chi.Router) {
		r.Get("/status", handlers.HolidayCacheStatus(d))
		r.With(refreshLimit).Post("/refresh", handlers.RefreshHolidays(d))
		r.Get("/{year}", handlers.ListHolidays(d))
		r.With(refreshLimit).Post("/{year}/refresh", handlers.RefreshHolidayYear(d))
	})
}
