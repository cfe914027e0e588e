package cli

import (
	"context"
	"fmt"

	"github.com/rvalverdem/takt/internal/cli/formatter"
	"github.com/rvalverdem/takt/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the worker roster",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var badge string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{Name: args[0], Badge: badge, Active: true}
			if err := app.Employees.Create(context.Background(), e); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", e.Name, e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&badge, "badge", "", "Badge ID printed on the worker's card")
	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(context.Background(), !all)
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Println("No workers.")
				return nil
			}

			rows := make([][]string, 0, len(employees))
			for _, e := range employees {
				state := formatter.StyleGreen.Render("active")
				if !e.Active {
					state = formatter.StyleDim.Render("inactive")
				}
				rows = append(rows, []string{e.Name, e.Badge, state})
			}
			fmt.Print(formatter.RenderTable([]string{"NAME", "BADGE", "STATE"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive workers")
	return cmd
}
