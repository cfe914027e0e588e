package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rvalverdem/takt/internal/cli/formatter"
	"github.com/rvalverdem/takt/internal/engine"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var showAnomalies bool

	cmd := &cobra.Command{
		Use:   "status <order>",
		Short: "Show a work order's progress rebuilt from its scan log",
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

			head := fmt.Sprintf("%s  %s\nCompleted: %d/%d  In progress: %d  Workers: %d",
				formatter.StyleBold.Render(wo.OrderNo),
				formatter.StatusIndicator(wo.Status),
				res.Summary.CompletedUnits, wo.QtyPlanned,
				res.Summary.InProgressUnits, res.Summary.ActiveWorkers)
			if res.Summary.AvgCycleSeconds > 0 {
				head += fmt.Sprintf("\nAvg cycle: %s", formatter.Seconds(res.Summary.AvgCycleSeconds))
			}
			fmt.Println(formatter.RenderBox("status", head))

			now := time.Now().UTC()
			var open [][]string
			for i := range res.Sessions {
				s := &res.Sessions[i]
				if !s.Open() {
					continue
				}
				open = append(open, []string{
					s.Serial,
					s.EmployeeID,
					s.InAt.Local().Format("15:04:05"),
					formatter.Seconds(engine.LiveElapsed(*s, res.Timing, now)),
				})
			}
			if len(open) > 0 {
				fmt.Print(formatter.RenderTable(
					[]string{"SERIAL", "EMPLOYEE", "IN", "ELAPSED"}, open))
			}

			if showAnomalies && len(res.Anomalies) > 0 {
				rows := make([][]string, 0, len(res.Anomalies))
				for _, a := range res.Anomalies {
					rows = append(rows, []string{
						string(a.Kind),
						a.Serial,
						a.OccurredAt.Local().Format("15:04:05"),
						formatter.Truncate(a.EventID, 8),
					})
				}
				fmt.Print(formatter.RenderTable(
					[]string{"ANOMALY", "SERIAL", "AT", "EVENT"}, rows))
			} else if len(res.Anomalies) > 0 {
				fmt.Println(formatter.StyleDim.Render(
					strconv.Itoa(len(res.Anomalies)) + " anomalous scan(s), rerun with --anomalies"))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showAnomalies, "anomalies", false, "List unpaired scans")
	return cmd
}
