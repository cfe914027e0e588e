package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/rvalverdem/takt/internal/cli/formatter"
	"github.com/rvalverdem/takt/internal/domain"
	"github.com/spf13/cobra"
)

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage work orders",
	}

	cmd.AddCommand(
		newOrderNewCmd(app),
		newOrderListCmd(app),
		newOrderShowCmd(app),
		newOrderCompleteCmd(app),
		newOrderCancelCmd(app),
		newOrderReopenCmd(app),
		newOrderPauseCmd(app),
		newOrderResumeCmd(app),
	)

	return cmd
}

func newOrderNewCmd(app *App) *cobra.Command {
	var orderNo, lineID, productID, breakStart, breakEnd, timezone string
	var qty, roster int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a work order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// With no order number on the command line, collect the order
			// interactively when a terminal is attached.
			if orderNo == "" && app.interactive() {
				if err := runOrderForm(&orderNo, &lineID, &productID, &breakStart, &breakEnd, &timezone, &qty); err != nil {
					return err
				}
			}

			wo := &domain.WorkOrder{
				OrderNo:     orderNo,
				LineID:      lineID,
				ProductID:   productID,
				QtyPlanned:  qty,
				BreakStart:  breakStart,
				BreakEnd:    breakEnd,
				Timezone:    timezone,
				RosterCount: roster,
			}
			if err := app.Orders.Create(ctx, wo); err != nil {
				return err
			}

			fmt.Printf("Created work order %s (%s)\n", wo.OrderNo, wo.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&orderNo, "order-no", "", "Order number printed on the traveler")
	cmd.Flags().StringVar(&lineID, "line", "", "Production line ID")
	cmd.Flags().StringVar(&productID, "product", "", "Product ID")
	cmd.Flags().IntVar(&qty, "qty", 0, "Planned unit quantity")
	cmd.Flags().StringVar(&breakStart, "break-start", "", "Daily break start (HH:MM)")
	cmd.Flags().StringVar(&breakEnd, "break-end", "", "Daily break end (HH:MM)")
	cmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone the break bounds are read in (default: station local)")
	cmd.Flags().IntVar(&roster, "roster", 0, "Worker count fallback when scans carry no badge")

	return cmd
}

// runOrderForm collects the work order fields with a huh form.
func runOrderForm(orderNo, lineID, productID, breakStart, breakEnd, timezone *string, qty *int) error {
	qtyStr := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Order number").
				Placeholder("WO-2026-0042").
				Value(orderNo).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("order number is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Line ID").
				Value(lineID),
			huh.NewInput().
				Title("Product ID").
				Value(productID),
			huh.NewInput().
				Title("Planned quantity").
				Placeholder("100").
				Value(&qtyStr).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Break start (HH:MM, blank for none)").
				Placeholder("12:00").
				Value(breakStart).
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("Break end (HH:MM, blank for none)").
				Placeholder("12:30").
				Value(breakEnd).
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("Timezone (IANA name, blank for station local)").
				Placeholder("America/Chicago").
				Value(timezone).
				Validate(validateOptionalTimezone),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}
	if qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", qtyStr)
		}
		*qty = n
	}
	return nil
}

func validateOptionalInt(s string) error {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if s == "" {
		return nil
	}
	return domain.ValidateClock(s)
}

func validateOptionalTimezone(s string) error {
	if s == "" {
		return nil
	}
	return domain.ValidateTimezone(s)
}

func newOrderListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.Orders.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No work orders.")
				return nil
			}

			rows := make([][]string, 0, len(orders))
			for _, wo := range orders {
				rows = append(rows, []string{
					wo.OrderNo,
					formatter.StatusIndicator(wo.Status),
					wo.LineID,
					wo.ProductID,
					strconv.Itoa(wo.QtyPlanned),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ORDER", "STATUS", "LINE", "PRODUCT", "QTY"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed and cancelled orders")
	return cmd
}

func newOrderShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order>",
		Short: "Show one work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			content := fmt.Sprintf("%s  %s\nLine: %s  Product: %s  Qty: %d",
				formatter.StyleBold.Render(wo.OrderNo),
				formatter.StatusIndicator(wo.Status),
				wo.LineID, wo.ProductID, wo.QtyPlanned)
			if wo.BreakStart != "" {
				content += fmt.Sprintf("\nBreak: %s–%s", wo.BreakStart, wo.BreakEnd)
				if wo.Timezone != "" {
					content += " " + wo.Timezone
				}
			}

			pauses, err := app.Orders.ListPauses(ctx, wo.ID)
			if err != nil {
				return err
			}
			for _, p := range pauses {
				end := "ongoing"
				if p.EndAt != nil {
					end = p.EndAt.Local().Format("15:04")
				}
				content += fmt.Sprintf("\nPause: %s–%s (%s)",
					p.StartAt.Local().Format("15:04"), end, p.Reason)
			}

			fmt.Println(formatter.RenderBox("work order", content))
			return nil
		},
	}
}

func newOrderCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <order>",
		Short: "Mark a work order completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Orders.Complete(ctx, wo.ID); err != nil {
				return err
			}
			fmt.Printf("Completed %s\n", wo.OrderNo)
			return nil
		},
	}
}

func newOrderCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order>",
		Short: "Cancel a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Orders.Cancel(ctx, wo.ID); err != nil {
				return err
			}
			fmt.Printf("Cancelled %s\n", wo.OrderNo)
			return nil
		},
	}
}

func newOrderReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <order>",
		Short: "Reopen a completed or cancelled work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Orders.Reopen(ctx, wo.ID); err != nil {
				return err
			}
			fmt.Printf("Reopened %s\n", wo.OrderNo)
			return nil
		},
	}
}

func newOrderPauseCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "pause <order>",
		Short: "Declare a pause on a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			pw, err := app.Orders.DeclarePause(ctx, wo.ID, reason)
			if err != nil {
				return err
			}
			fmt.Printf("Paused %s at %s (%s)\n",
				wo.OrderNo, pw.StartAt.Local().Format("15:04:05"), pw.Reason)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the line is pausing")
	return cmd
}

func newOrderResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <order>",
		Short: "End the open pause on a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wo, err := app.Orders.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			pw, err := app.Orders.EndPause(ctx, wo.ID)
			if err != nil {
				return err
			}
			dur := int(pw.EndAt.Sub(pw.StartAt).Seconds())
			fmt.Printf("Resumed %s after %s\n", wo.OrderNo, formatter.Seconds(dur))
			return nil
		},
	}
}
