package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage tasks and sections",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskSectionCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskShowCmd(app),
		newTaskMoveCmd(app),
		newTaskToggleCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

// taskFlags are the optional field overrides shared by add and edit.
type taskFlags struct {
	title    string
	kind     string
	start    string
	end      string
	progress int
	color    string
	depends  string
}

func (f *taskFlags) register(flags *pflag.FlagSet, withTitle bool) {
	if withTitle {
		flags.StringVar(&f.title, "title", "", "Task title")
		flags.StringVar(&f.kind, "type", "", "Node type (task|section)")
	}
	flags.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	flags.StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	flags.IntVar(&f.progress, "progress", 0, "Progress percentage (0-100)")
	flags.StringVar(&f.color, "color", "", "Bar color (#rrggbb)")
	flags.StringVar(&f.depends, "depends", "", "Comma-separated IDs this task depends on")
}

// changed reports whether any field flag was set.
func (f *taskFlags) changed(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "title", "type", "start", "end", "progress", "color", "depends":
			changed = true
		}
	})
	return changed
}

// apply copies the flags that were set onto t.
func (f *taskFlags) apply(flags *pflag.FlagSet, t *domain.Task) error {
	if flags.Changed("title") {
		t.Title = f.title
	}
	if flags.Changed("type") {
		if !domain.ValidTaskKinds[strings.ToLower(strings.TrimSpace(f.kind))] {
			return fmt.Errorf("invalid type %q: use task or section", f.kind)
		}
		t.Kind = domain.ParseTaskKind(f.kind)
	}
	if flags.Changed("start") {
		d, err := parseFlagDate("start", f.start)
		if err != nil {
			return err
		}
		t.StartDate = d
	}
	if flags.Changed("end") {
		d, err := parseFlagDate("end", f.end)
		if err != nil {
			return err
		}
		t.EndDate = d
	}
	if flags.Changed("progress") {
		if err := validateProgress(strconv.Itoa(f.progress)); err != nil {
			return fmt.Errorf("invalid progress %d: %w", f.progress, err)
		}
		t.Progress = f.progress
	}
	if flags.Changed("color") {
		t.Color = strings.TrimSpace(f.color)
	}
	if flags.Changed("depends") {
		t.Dependencies = splitIDs(f.depends)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			t.EndDate.Format(flagDateLayout), t.StartDate.Format(flagDateLayout))
	}
	return nil
}

func parseFlagDate(name, value string) (time.Time, error) {
	d, err := time.Parse(flagDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", name, value)
	}
	return d, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var parent string
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Add a task, optionally inside a section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			parentID := ""
			if parent != "" {
				id, err := resolveTaskID(ctx, app, parent)
				if err != nil {
					return err
				}
				parentID = id
			}
			title := ""
			if len(args) == 1 {
				title = args[0]
			}

			t, err := app.Tasks.AddTask(ctx, parentID, title)
			if err != nil {
				return err
			}
			if f.changed(cmd.Flags()) {
				if err := f.apply(cmd.Flags(), t); err != nil {
					return err
				}
				if t, err = app.Tasks.Save(ctx, t); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent section or task ID")
	f.register(cmd.Flags(), false)
	return cmd
}

func newTaskSectionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "section [TITLE]",
		Short: "Add a top-level section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			t, err := app.Tasks.AddSection(commandContext(cmd), title)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created section %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var f taskFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a task's fields",
		Long: "Update a task's fields. With no field flags on a terminal, or with\n" +
			"--interactive, an edit form is shown.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}

			switch {
			case f.changed(cmd.Flags()):
				if err := f.apply(cmd.Flags(), t); err != nil {
					return err
				}
			case interactive || app.interactive():
				values := newTaskFormValues(t)
				if err := editTaskForm(values).Run(); err != nil {
					return err
				}
				if err := values.apply(t); err != nil {
					return err
				}
			default:
				return fmt.Errorf("nothing to change: pass field flags or --interactive")
			}

			saved, err := app.Tasks.Save(ctx, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", saved.Title)
			return nil
		},
	}

	f.register(cmd.Flags(), true)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit in a form")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task and everything nested under it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			roots, err := app.Tasks.Tree(ctx)
			if err != nil {
				return err
			}
			loc := tasktree.Locate(roots, id)

			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}

			nested := 0
			if loc.Found() {
				nested = tasktree.Count(loc.Node.Children)
			}
			if nested > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s and %d nested tasks\n", loc.Node.Title, nested)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", id)
			}
			return nil
		},
	}
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			roots, err := app.Tasks.Tree(ctx)
			if err != nil {
				return err
			}
			// The tree copy carries children and derived section dates.
			loc := tasktree.Locate(roots, id)
			if !loc.Found() {
				return fmt.Errorf("task %q not found", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(loc.Node))
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID TARGET",
		Short: "Move a task to a sibling's position",
		Long: "Move a task to the position currently held by TARGET. Both must\n" +
			"share the same parent; moving across parents is not supported.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			movedID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			targetID, err := resolveTaskID(ctx, app, args[1])
			if err != nil {
				return err
			}
			roots, err := app.Tasks.Tree(ctx)
			if err != nil {
				return err
			}
			moved, target := tasktree.Locate(roots, movedID), tasktree.Locate(roots, targetID)
			if moved.Node.ParentIDOrEmpty() != target.Node.ParentIDOrEmpty() {
				return fmt.Errorf("%s and %s have different parents", moved.Node.Title, target.Node.Title)
			}

			roots, err = app.Tasks.Reorder(ctx, movedID, targetID)
			if err != nil {
				return err
			}
			after := tasktree.Locate(roots, movedID)
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", after.Node.Title, after.Index+1)
			return nil
		},
	}
}

func newTaskToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Expand or collapse a section in the chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			roots, err := app.Tasks.ToggleExpanded(ctx, id)
			if err != nil {
				return err
			}
			n := tasktree.Locate(roots, id).Node
			state := "Collapsed"
			if n.IsExpanded() {
				state = "Expanded"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, n.Title)
			return nil
		},
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every task as a tree",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := app.Tasks.Tree(commandContext(cmd))
			if err != nil {
				return err
			}
			if table {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskTable(roots))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(roots))
			return nil
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Show a table with dates and progress")
	return cmd
}
