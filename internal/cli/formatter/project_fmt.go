package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
)

// FormatProject renders the project settings together with a summary of
// the tree they frame. now anchors the relative dates.
func FormatProject(p *domain.ProjectSettings, roots []*domain.Task, now time.Time) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(fmt.Sprintf("%-7s", label)), value))
	}

	b.WriteString(Bold(p.DisplayName()) + "\n\n")

	start, end, ok := tasktree.Span(roots)
	source := "(from tasks)"
	if p.HasExplicitRange() {
		start, end, ok = *p.StartDate, *p.EndDate, true
		source = "(pinned)"
	}
	if ok {
		line("RANGE", DateRange(start, end)+" "+Dim(source))
		line("ENDS", RelativeDateFrom(end, now))
	} else {
		line("RANGE", Dim("--"))
	}

	sections, leaves, progress := 0, 0, 0
	tasktree.Walk(roots, func(n *domain.Task, _ int) bool {
		if n.IsSection() {
			sections++
			return true
		}
		leaves++
		progress += n.Progress
		return true
	})
	line("NODES", fmt.Sprintf("%d sections, %d tasks", sections, leaves))
	if leaves > 0 {
		line("OVERALL", RenderProgress(progress/leaves, 20))
	}
	if !p.UpdatedAt.IsZero() {
		line("UPDATED", HumanDate(p.UpdatedAt)+" "+Dim("("+RelativeDateFrom(p.UpdatedAt, now)+")"))
	}

	return RenderBox("Project", b.String())
}
