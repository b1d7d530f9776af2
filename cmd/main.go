// Command lru-webserver serves a directory over HTTP through an in-memory
// LRU cache and stores POSTed bodies under the same document root.
package main

import (
	"context"
	"time"

	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Startup failed")
	}

	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.RequestTimeout)
	runErr := server.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := application.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Cleanup failed")
	}
	cancel()

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
