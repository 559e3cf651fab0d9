package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/handlers"
)

func init() { Register(registerAlarms) }

func registerAlarms(r chi.Router, d deps.Deps) {
	r.Route("/alarms", func(r chi.Router) {
		r.Get("/", handlers.ListAlarms(d))
		r.Post("/", handlers.CreateAlarm(d))
		r.Get("/next", handlers.NextAlarm(d))
		r.Post("/reschedule", handlers.RescheduleAlarms(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetAlarm(d))
			r.Put("/", handlers.UpdateAlarm(d))
			r.Delete("/", handlers.DeleteAlarm(d))
			r.Post("/toggle", handlers.ToggleAlarm(d))
		})
	})
}
