// Command server runs the wordhabit backend HTTP server.
//
// Configuration comes from CONFIG_PATH (YAML) with environment variable
// overrides; see internal/config.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/wordhabit/wordhabit-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
