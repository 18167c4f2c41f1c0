package main

import (
	"fmt"
	"os"
	"strconv"

	"continuum/internal/config"
	"continuum/internal/database"
	"continuum/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrate <up|down|version> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return err
	}
	defer m.Close()

	switch command := args[0]; command {
	case "up":
		return m.RunMigrations()

	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil || steps <= 0 {
				return fmt.Errorf("invalid step count: %q", args[1])
			}
		}
		return m.RollbackMigrations(steps)

	case "version":
		version, dirty, ok, err := m.MigrationVersion()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		if !ok {
			logger.Get().Info("No migrations applied")
			return nil
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, or version)", command)
	}

	return nil
}
