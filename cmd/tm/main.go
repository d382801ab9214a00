package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/config"
	"github.com/tgienger/tm/internal/db"
	"github.com/tgienger/tm/internal/logger"
	"github.com/tgienger/tm/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("tm %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logFile, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logFile.Close()

	log.Info().Str("version", version).Str("db", cfg.DBPath).Msg("starting tm")

	database, err := db.New(cfg)
	if err != nil {
		logger.ErrorWithStack(err)
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := database.Initialize(); err != nil {
		logger.ErrorWithStack(err)
		return fmt.Errorf("initializing database: %w", err)
	}

	// Create and run the application
	app := ui.NewApp(database)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.ErrorWithStack(err)
		return fmt.Errorf("running application: %w", err)
	}

	log.Info().Msg("exiting tm")
	return nil
}
