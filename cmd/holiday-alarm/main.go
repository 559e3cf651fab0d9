package main

import (
	"log"

	"github.com/snoozelab/holiday-alarm/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ holiday-alarm failed to start: %v", err)
	}
}
