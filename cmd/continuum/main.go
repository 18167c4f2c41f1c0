// Command continuum works on the local store from the terminal: it exports
// and imports backups and prints the dashboard and upcoming items.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"continuum/internal/config"
	"continuum/internal/database"
	"continuum/internal/logger"
	"continuum/internal/server"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	a := &app{cfg: cfg, open: openStore(cfg), out: os.Stdout}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range a.commands() {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// openStore opens and migrates the configured database.
func openStore(cfg *config.Config) func() (*server.Services, func(), error) {
	return func() (*server.Services, func(), error) {
		m, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		if err := m.RunMigrations(); err != nil {
			m.Close()
			return nil, nil, err
		}
		closer := func() {
			if err := m.Close(); err != nil {
				logger.Get().Warnf("database close error: %v", err)
			}
		}
		return server.NewServices(m.DB(), cfg), closer, nil
	}
}
