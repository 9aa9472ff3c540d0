package main

import (
	"coating/config"
	"coating/di"
	"coating/helper"
	"coating/shared/logger"
	"coating/shared/metrics"

	"github.com/rs/zerolog/log"
)

// @title Coating API
// @version 1.0
// @description Booking, contact and portfolio backend for the electrostatic coating site.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)
	metrics.Register()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
