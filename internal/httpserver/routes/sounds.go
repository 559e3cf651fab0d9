package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
	"github.com/snoozelab/holiday-alarm/internal/httpserver/handlers"
)

func init() { Register(registerSounds) }

func registerSounds(r chi.Router, d deps.Deps) {
	r.Get("/sounds", handlers.ListSounds(d))
}
