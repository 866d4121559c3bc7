package main

import (
	"bistro/config"
	"bistro/di"
	"bistro/helper"
	"bistro/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:generate swag init -g cmd/app/main.go -o docs -d ../../

// @title                      Bistro API
// @version                    1.0
// @description                Restaurant floor, reservations, menu, orders, shifts and statistics.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
