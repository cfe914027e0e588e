package cli

import (
	"context"
	"fmt"

	"github.com/rvalverdem/takt/internal/cli/formatter"
	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/service"
	"github.com/spf13/cobra"
)

func newScanCmd(app *App) *cobra.Command {
	var employeeID string
	var forceIn, forceOut bool

	cmd := &cobra.Command{
		Use:   "scan <order> <serial>",
		Short: "Record a barcode scan",
		Long: `Record a barcode scan against a work order.

Without --in or --out the scan toggles: a serial with no open session
starts one, a serial with an open session closes it. Dedicated IN or
OUT stations pass the direction explicitly and mismatches are rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceIn && forceOut {
				return fmt.Errorf("--in and --out are mutually exclusive")
			}

			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			serial := args[1]

			var res *service.ToggleResult
			switch {
			case forceIn:
				res, err = app.Scans.RecordScan(ctx, wo.ID, serial, domain.ScanIn, employeeID)
			case forceOut:
				res, err = app.Scans.RecordScan(ctx, wo.ID, serial, domain.ScanOut, employeeID)
			default:
				res, err = app.Scans.Toggle(ctx, wo.ID, serial, employeeID)
			}
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s  %s on %s", formatter.ScanIndicator(res.Action), serial, wo.OrderNo)
			if res.CycleSeconds != nil {
				line += fmt.Sprintf("  cycle %s", formatter.Seconds(*res.CycleSeconds))
			}
			fmt.Println(line)
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "Badge ID of the scanning worker")
	cmd.Flags().BoolVar(&forceIn, "in", false, "Require this scan to open a session")
	cmd.Flags().BoolVar(&forceOut, "out", false, "Require this scan to close a session")

	return cmd
}
