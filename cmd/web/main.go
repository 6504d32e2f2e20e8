// Command web runs the scan dashboard API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"scanpulse/internal/app"
)

func main() {
	// Missing .env is fine; config falls back to defaults and SCANPULSE_* vars
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
