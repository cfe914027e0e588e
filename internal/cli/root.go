package cli

import (
	"github.com/rvalverdem/takt/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Orders    service.WorkOrderService
	Scans     service.ScanService
	Employees service.EmployeeService

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands fall back to flag-only mode when it is false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "takt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "takt",
		Short: "Work order scan tracking and cycle times",
	}

	root.AddCommand(
		newOrderCmd(app),
		newScanCmd(app),
		newStatusCmd(app),
		newSessionCmd(app),
		newEmployeeCmd(app),
		newWatchCmd(app),
	)

	return root
}
