package main

import (
	"fmt"
	"os"

	"continuum/internal/config"
	"continuum/internal/database"
	"continuum/internal/logger"
	"continuum/internal/server"
	"continuum/internal/validator"
)

// @title           Continuum API
// @version         1.0
// @description     Continuum tracks subscriptions, recurring payments, personal assets and warranties on the owner's machine.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	svc := server.NewServices(dbManager.DB(), appConfig)
	router := server.NewRouter(svc, appConfig)

	log.Infow("Starting Continuum server",
		"port", appConfig.Port,
		"driver", appConfig.DBDriver,
		"currency", appConfig.Currency,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
