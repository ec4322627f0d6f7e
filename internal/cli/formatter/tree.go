package formatter

import (
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title     string
	ID        string
	Level     int
	IsLast    bool
	Section   bool
	Collapsed bool
	Detail    string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// TreeItems flattens the whole tree, ignoring expansion, into display items.
func TreeItems(roots []*domain.Task) []TreeItem {
	var items []TreeItem
	var walk func(nodes []*domain.Task, level int)
	walk = func(nodes []*domain.Task, level int) {
		for i, n := range nodes {
			items = append(items, TreeItem{
				Title:     n.Title,
				ID:        n.ID,
				Level:     level,
				IsLast:    i == len(nodes)-1,
				Section:   n.IsSection(),
				Collapsed: n.HasChildren() && !n.IsExpanded(),
				Detail:    DateRange(n.StartDate, n.EndDate),
			})
			walk(n.Children, level+1)
		}
	}
	walk(roots, 0)
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Sections are orange, collapsed nodes get a ▸ marker, and
// detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// open[l] is true while an ancestor at level l still has siblings below.
	var open []bool

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		if len(open) > item.Level {
			open = open[:item.Level]
		}
		var prefix strings.Builder
		for l := 1; l < item.Level; l++ {
			if l < len(open) && open[l] {
				prefix.WriteString(treePipe)
			} else {
				prefix.WriteString(treeSpace)
			}
		}
		if item.Level > 0 {
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		title := item.Title
		if item.Section {
			title = StyleSection.Render(title)
		}
		if item.Collapsed {
			title = StyleDim.Render("▸ ") + title
		}
		if item.ID != "" {
			title += " " + TruncID(item.ID)
		}

		content := StyleDim.Render(prefix.String()) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
