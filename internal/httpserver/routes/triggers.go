package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/handlers"
)

func init() { Register(registerTriggers) }

func registerTriggers(r chi.Router, d deps.Deps) {
	r.Route("/triggers", func(r chi.Router) {
		r.Get("/", handlers.ListTriggers(d))
		r.Delete("/", handlers.CancelAllTriggers(d))
	})
}
