// Command server runs the wordnest HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML) and environment
// variables; see internal/config. The process shuts down gracefully on
// SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/wordnest/wordnest-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
