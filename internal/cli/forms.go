package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const flagDateLayout = "2006-01-02"

func ganttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskFormValues is the string-typed mirror of a task the edit form binds to.
type taskFormValues struct {
	Title    string
	Kind     string
	Start    string
	End      string
	Progress string
	Color    string
	Depends  string
}

func newTaskFormValues(t *domain.Task) *taskFormValues {
	return &taskFormValues{
		Title:    t.Title,
		Kind:     string(t.Kind),
		Start:    t.StartDate.Format(flagDateLayout),
		End:      t.EndDate.Format(flagDateLayout),
		Progress: strconv.Itoa(t.Progress),
		Color:    t.Color,
		Depends:  strings.Join(t.Dependencies, ", "),
	}
}

// apply copies validated form values onto t.
func (v *taskFormValues) apply(t *domain.Task) error {
	start, err := time.Parse(flagDateLayout, strings.TrimSpace(v.Start))
	if err != nil {
		return fmt.Errorf("invalid start date %q", v.Start)
	}
	end, err := time.Parse(flagDateLayout, strings.TrimSpace(v.End))
	if err != nil {
		return fmt.Errorf("invalid end date %q", v.End)
	}
	progress, err := strconv.Atoi(strings.TrimSpace(v.Progress))
	if err != nil {
		return fmt.Errorf("invalid progress %q", v.Progress)
	}

	t.Title = strings.TrimSpace(v.Title)
	t.Kind = domain.ParseTaskKind(v.Kind)
	t.StartDate, t.EndDate = start, end
	t.Progress = progress
	t.Color = strings.TrimSpace(v.Color)
	t.Dependencies = splitIDs(v.Depends)
	return nil
}

// editTaskForm returns a themed form over every editable task field.
func editTaskForm(v *taskFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.Title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Task", string(domain.KindTask)),
					huh.NewOption("Section", string(domain.KindSection)),
				).
				Value(&v.Kind),
			dateInput("Start (YYYY-MM-DD)", &v.Start),
			dateInput("End (YYYY-MM-DD)", &v.End),
			huh.NewInput().
				Title("Progress (0-100)").
				Value(&v.Progress).
				Validate(validateProgress),
			huh.NewInput().
				Title("Color (#rrggbb, blank for default)").
				Placeholder("#458588").
				Value(&v.Color),
			huh.NewInput().
				Title("Depends on (comma-separated IDs)").
				Value(&v.Depends),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

// dateInput returns a huh.Input for a required date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateDate)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(flagDateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateProgress(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 0 || p > 100 {
		return fmt.Errorf("enter a whole number from 0 to 100")
	}
	return nil
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
