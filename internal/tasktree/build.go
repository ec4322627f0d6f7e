// Package tasktree holds the pure operations over the Gantt task tree:
// building it from persisted rows, flattening it back, locating nodes and
// producing reordered or toggled copies.
//
// Every operation returns a new tree value. Input rows and trees are never
// mutated; untouched subtrees are shared between the input and the output.
package tasktree

import (
	"sort"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Build assembles flat rows into a forest of root nodes.
//
// Rows whose parent is missing, or whose parent chain loops back to them,
// are promoted to the root level with their ParentID cleared. When several
// rows share an identifier the first one wins and the rest are dropped.
// Children are ordered by Position at every level and section date ranges
// are derived from their descendants.
func Build(rows []*domain.Task) []*domain.Task {
	byID := make(map[string]*domain.Task, len(rows))
	order := make([]*domain.Task, 0, len(rows))

	for _, r := range rows {
		if r == nil {
			continue
		}
		if r.ID != "" {
			if _, dup := byID[r.ID]; dup {
				continue
			}
		}
		n := r.Clone()
		n.Children = nil
		if n.ID != "" {
			byID[n.ID] = n
		}
		order = append(order, n)
	}

	var roots []*domain.Task
	for _, n := range order {
		pid := n.ParentIDOrEmpty()
		parent, ok := byID[pid]
		if pid == "" || !ok || reachesSelf(byID, n.ID, pid) {
			n.ParentID = nil
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortByPosition(roots)
	for _, r := range roots {
		deriveSectionDates(r)
	}
	return roots
}

// reachesSelf walks up from parentID and reports whether it arrives back at
// id. Loops that do not pass through id stop the walk without a match; they
// are broken when their own members are attached.
func reachesSelf(byID map[string]*domain.Task, id, parentID string) bool {
	seen := make(map[string]bool)
	for cur := parentID; cur != ""; {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		n, ok := byID[cur]
		if !ok {
			return false
		}
		cur = n.ParentIDOrEmpty()
	}
	return false
}

func sortByPosition(nodes []*domain.Task) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Position < nodes[j].Position
	})
	for _, n := range nodes {
		if n.HasChildren() {
			sortByPosition(n.Children)
		}
	}
}

// deriveSectionDates sets every section's range to the span of its children,
// children first so nested sections feed their parents.
func deriveSectionDates(n *domain.Task) {
	for _, c := range n.Children {
		deriveSectionDates(c)
	}
	if !n.IsSection() || !n.HasChildren() {
		return
	}
	start, end := n.Children[0].StartDate, n.Children[0].EndDate
	for _, c := range n.Children[1:] {
		if c.StartDate.Before(start) {
			start = c.StartDate
		}
		if c.EndDate.After(end) {
			end = c.EndDate
		}
	}
	n.StartDate, n.EndDate = start, end
}
