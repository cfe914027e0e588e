package main

import (
	"fmt"
	"os"
	"path/filepath"

	// Work order timezones must resolve even on hosts without a zone
	// database installed.
	_ "time/tzdata"

	"github.com/mattn/go-isatty"
	"github.com/rvalverdem/takt/internal/cli"
	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/repository"
	"github.com/rvalverdem/takt/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.takt/takt.db
	dbPath := os.Getenv("TAKT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".takt", "takt.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	workOrderRepo := repository.NewSQLiteWorkOrderRepo(database)
	eventRepo := repository.NewSQLiteScanEventRepo(database)
	pauseRepo := repository.NewSQLitePauseRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Orders:    service.NewWorkOrderService(workOrderRepo, pauseRepo, uow),
		Scans:     service.NewScanService(workOrderRepo, eventRepo, pauseRepo, employeeRepo, uow),
		Employees: service.NewEmployeeService(employeeRepo),
	}

	// Detect interactive terminal for forms and the watch dashboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
