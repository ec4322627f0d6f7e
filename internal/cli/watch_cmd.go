package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/watch"
	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// watchable reports whether the configured database is a file other
// processes can write to.
func (a *App) watchable() bool {
	return a.Config.DBPath != "" && a.Config.DBPath != db.MemoryPath
}

func newWatchCmd(app *App) *cobra.Command {
	var cells int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the chart whenever the database changes",
		Long: "Print the chart, then print it again each time another gantt\n" +
			"process writes to the database. Stop with Ctrl+C.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.watchable() {
				return fmt.Errorf("watch needs a database file, not %q", app.Config.DBPath)
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			show := func(ctx context.Context) error {
				chart, err := textChart(ctx, app, cells, 0)
				if err != nil {
					return err
				}
				if app.interactive() {
					fmt.Fprint(out, clearScreen)
				}
				fmt.Fprint(out, chart)
				return nil
			}
			if err := show(ctx); err != nil {
				return err
			}

			log := app.logger().With("component", "watch")
			refresher := watch.NewRefresher(show)
			w, err := watch.New(app.Config.DBPath, app.Config.Debounce, func() {
				if err := refresher.Notify(ctx); err != nil {
					log.Error("refresh failed", "error", err)
				}
			})
			if err != nil {
				return fmt.Errorf("watching %s: %w", app.Config.DBPath, err)
			}
			defer w.Close()

			log.Info("watching", "path", app.Config.DBPath)
			w.Run(ctx, func(err error) {
				log.Warn("watcher error", "error", err)
			})
			return nil
		},
	}

	cmd.Flags().IntVar(&cells, "cells", defaultCellsPerDay, "Terminal cells per day (1-3)")
	return cmd
}
