package cli

import (
	"context"
	"fmt"

	"github.com/rvalverdem/takt/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and correct derived sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionDeleteCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list <order>",
		Short: "List sessions reconstructed from the scan log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := app.Scans.BuildSummary(ctx, wo.ID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(res.Sessions))
			for i := range res.Sessions {
				s := &res.Sessions[i]
				if openOnly && !s.Open() {
					continue
				}
				out := "-"
				cycle := "-"
				if s.OutAt != nil {
					out = s.OutAt.Local().Format("15:04:05")
				}
				if s.CycleSeconds != nil {
					cycle = formatter.Seconds(*s.CycleSeconds)
				}
				rows = append(rows, []string{
					formatter.Truncate(s.ID, 8),
					s.Serial,
					s.EmployeeID,
					s.InAt.Local().Format("15:04:05"),
					out,
					cycle,
				})
			}
			if len(rows) == 0 {
				fmt.Println("No sessions.")
				return nil
			}
			fmt.Print(formatter.RenderTable(
				[]string{"SESSION", "SERIAL", "EMPLOYEE", "IN", "OUT", "CYCLE"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&openOnly, "open", false, "Only sessions without an OUT scan")
	return cmd
}

func newSessionDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <order> <session-id>",
		Short: "Delete a session's scan events",
		Long: `Delete a session by removing its IN and OUT scan events in one
transaction, so no orphan half-pair can survive a partial failure. Useful
for scrapping a unit or undoing a bad scan pair. Pass the full session ID
from "takt session list".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Scans.DeleteSession(ctx, wo.ID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Deleted session %s from %s\n", formatter.Truncate(args[1], 8), wo.OrderNo)
			return nil
		},
	}
}
