package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-service/internal/config"
	"library-service/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// Load từ .env file (development/local)
	// Production sẽ dùng system environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logger chưa được cấu hình, dùng default JSON output
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting")

	// Delegate toàn bộ logic sang Serve()
	if err := Serve(cfg); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}
