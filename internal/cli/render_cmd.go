package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/render"
	"github.com/spf13/cobra"
)

func newRenderCmd(app *App) *cobra.Command {
	var pageRows, dayWidth, rowHeight int

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Save the chart as an image (.svg, .png) or document (.pdf)",
		Long: "Save the visible rows of the chart. PDF output is paginated into\n" +
			"landscape A4 pages of --page-rows rows each.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			roots, err := app.Tasks.Tree(ctx)
			if err != nil {
				return err
			}
			settings, err := app.Projects.Get(ctx)
			if err != nil {
				return err
			}
			c := render.New(settings.DisplayName(), roots, settings, app.now(), dayWidth, rowHeight)

			if app.interactive() {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Rendering "+filepath.Base(args[0]))
				defer stop()
			}
			if err := render.WriteFile(ctx, args[0], c, pageRows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d rows to %s\n", len(c.Rows), args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&pageRows, "page-rows", app.Config.PageSize, "Rows per PDF page")
	cmd.Flags().IntVar(&dayWidth, "day-width", app.Config.DayWidth, "Pixels per day")
	cmd.Flags().IntVar(&rowHeight, "row-height", app.Config.RowHeight, "Pixels per row")
	return cmd
}
