package main

import (
	"context"
	"os/signal"
	"syscall"

	"studio/config"
	"studio/di"
	"studio/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker, err := di.InitializeWorker()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize notification worker")
	}

	defer func() {
		if err := worker.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Notification worker stopped")

		return
	}

	log.Info().Msg("Notification worker shut down")
}
