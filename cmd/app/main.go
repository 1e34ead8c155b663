package main

import (
	"studio/config"
	"studio/di"
	"studio/helper"
	"studio/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Studio API
// @version 1.0
// @description Bookings, gallery, reviews, services, videos and inquiries of a photography studio.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
