package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const defaultCellsPerDay = 2

func newChartCmd(app *App) *cobra.Command {
	var cells, labelWidth int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the Gantt chart of the visible rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := textChart(commandContext(cmd), app, cells, labelWidth)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&cells, "cells", defaultCellsPerDay, "Terminal cells per day (1-3)")
	cmd.Flags().IntVar(&labelWidth, "label-width", 0, "Width of the task label column")
	return cmd
}

// textChart loads the current tree and project and renders the terminal chart.
func textChart(ctx context.Context, app *App, cells, labelWidth int) (string, error) {
	roots, err := app.Tasks.Tree(ctx)
	if err != nil {
		return "", err
	}
	settings, err := app.Projects.Get(ctx)
	if err != nil {
		return "", err
	}
	return formatter.RenderGantt(roots, settings, formatter.GanttOptions{
		Title:       settings.DisplayName(),
		Today:       app.now(),
		CellsPerDay: cells,
		LabelWidth:  labelWidth,
	}), nil
}
