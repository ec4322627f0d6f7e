package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the chart interactively",
		Long: "Open the interactive chart. Changes written by other gantt\n" +
			"processes are picked up automatically.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("tui needs an interactive terminal")
			}
			ctx, cancel := context.WithCancel(commandContext(cmd))
			defer cancel()

			var program *tea.Program
			var refresher *watch.Refresher
			if app.watchable() {
				refresher = watch.NewRefresher(func(context.Context) error {
					program.Send(storeChangedMsg{})
					return nil
				})
			}

			program = tea.NewProgram(newChartModel(app, refresher),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)

			if refresher != nil {
				log := app.logger().With("component", "watch")
				w, err := watch.New(app.Config.DBPath, app.Config.Debounce, func() {
					_ = refresher.Notify(ctx)
				})
				if err != nil {
					return fmt.Errorf("watching %s: %w", app.Config.DBPath, err)
				}
				defer w.Close()
				go w.Run(ctx, func(err error) {
					log.Warn("watcher error", "error", err)
				})
			}

			_, err := program.Run()
			return err
		},
	}
}
