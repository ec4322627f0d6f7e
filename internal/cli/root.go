// Package cli is the gantt command line: cobra commands for scripting and a
// bubbletea chart for interactive editing.
package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks    service.TaskService
	Projects service.ProjectService
	Import   service.ImportService
	Export   service.ExportService

	Config config.Config
	Logger *slog.Logger

	// Now is the clock for "today" markers and default dates.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Forms and
	// spinners only run when it returns true.
	IsInteractive func() bool
}

// FromSession exposes a session's services to the commands.
func FromSession(s *app.Session) *App {
	return &App{
		Tasks:    s.Tasks,
		Projects: s.Projects,
		Import:   s.Import,
		Export:   s.Export,
		Config:   s.Config,
		Logger:   s.Logger,
	}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Plan work as a tree of tasks and sections on a Gantt chart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newProjectCmd(app),
		newChartCmd(app),
		newRenderCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newTUICmd(app),
		newWatchCmd(app),
	)

	return root
}

// commandContext returns the command's context, falling back to Background
// for commands executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
