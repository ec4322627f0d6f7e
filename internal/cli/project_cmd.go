package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show or change project settings",
	}

	cmd.AddCommand(
		newProjectShowCmd(app),
		newProjectSetCmd(app),
	)

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the project name, chart range and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := app.Projects.Get(ctx)
			if err != nil {
				return err
			}
			roots, err := app.Tasks.Tree(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p, roots, app.now()))
			return nil
		},
	}
}

func newProjectSetCmd(app *App) *cobra.Command {
	var name, start, end string
	var clearRange bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Rename the project or pin the chart range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := app.Projects.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("start") {
				d, err := parseFlagDate("start", start)
				if err != nil {
					return err
				}
				p.StartDate = &d
			}
			if cmd.Flags().Changed("end") {
				d, err := parseFlagDate("end", end)
				if err != nil {
					return err
				}
				p.EndDate = &d
			}
			if clearRange {
				p.StartDate, p.EndDate = nil, nil
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Pinned chart start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Pinned chart end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearRange, "clear-range", false, "Derive the chart range from the tasks again")
	cmd.MarkFlagsMutuallyExclusive("start", "clear-range")
	cmd.MarkFlagsMutuallyExclusive("end", "clear-range")
	return cmd
}
