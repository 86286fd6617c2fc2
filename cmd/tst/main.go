package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MrJohz/timesheettool/internal/cli"
	"github.com/MrJohz/timesheettool/internal/db"
	"github.com/MrJohz/timesheettool/internal/repository"
	"github.com/MrJohz/timesheettool/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.timesheettool/timesheettool.db
	dbPath := os.Getenv("TST_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".timesheettool", "timesheettool.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// One leveled logger for the whole process; the --verbose/--quiet flags
	// adjust the level before any command runs.
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// TST_LOG=1 routes per-use-case telemetry through the same logger.
	var observer service.UseCaseObserver
	if os.Getenv("TST_LOG") != "" {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	recordRepo := repository.NewSQLiteRecordRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Tracker:  service.NewTrackerService(uow, observer),
		Reports:  service.NewReportService(recordRepo, observer),
		Settings: service.NewSettingsService(settingsRepo),
		LogLevel: level,
		Logger:   logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
