package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
)

// FormatTaskDetail renders one node inside a box.
func FormatTaskDetail(t *domain.Task) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(t.Title), KindBadge(t.Kind)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ID      "), t.ID))
	if t.ParentID != nil {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("PARENT  "), TruncID(*t.ParentID)))
	}
	b.WriteString(fmt.Sprintf("  %s  %s %s\n", Dim("DATES   "),
		DateRange(t.StartDate, t.EndDate), Dim("("+FormatDays(t.DurationDays())+")")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("PROGRESS"), RenderProgress(t.Progress, 20)))
	if len(t.Dependencies) > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("DEPENDS "), strings.Join(t.Dependencies, ", ")))
	}
	if t.Color != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("COLOR   "), BarStyle(t).Render(t.Color)))
	}
	b.WriteString(fmt.Sprintf("  %s  %d\n", Dim("POSITION"), t.Position))

	if t.HasChildren() {
		state := "expanded"
		if !t.IsExpanded() {
			state = "collapsed"
		}
		b.WriteString(fmt.Sprintf("  %s  %d %s\n", Dim("CHILDREN"), len(t.Children), Dim("("+state+")")))
	}

	return RenderBox("Task", b.String())
}

// FormatTaskList renders the whole tree, collapsed branches included.
func FormatTaskList(roots []*domain.Task) string {
	if len(roots) == 0 {
		return Dim("No tasks yet. Add one with: gantt task add \"Title\"") + "\n"
	}
	return RenderTree(TreeItems(roots))
}

// FormatTaskTable renders every node as a table row, depth-first.
func FormatTaskTable(roots []*domain.Task) string {
	headers := []string{"ID", "TITLE", "TYPE", "START", "END", "PROGRESS"}
	return RenderTable(headers, flattenForTable(roots))
}

func flattenForTable(roots []*domain.Task) [][]string {
	var rows [][]string
	var walk func(nodes []*domain.Task, depth int)
	walk = func(nodes []*domain.Task, depth int) {
		for _, n := range nodes {
			title := strings.Repeat("  ", depth) + n.Title
			rows = append(rows, []string{
				TruncID(n.ID),
				title,
				KindBadge(n.Kind),
				n.StartDate.Format("2006-01-02"),
				n.EndDate.Format("2006-01-02"),
				fmt.Sprintf("%d%%", n.Progress),
			})
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return rows
}
