package tasktree

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Flatten converts the tree into persistence rows in depth-first order, each
// parent immediately followed by its subtree. Positions are renumbered to the
// sibling index and ParentID is taken from the enclosing node.
func Flatten(roots []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, Count(roots))
	flattenInto(&out, roots, nil)
	return out
}

func flattenInto(out *[]*domain.Task, siblings []*domain.Task, parentID *string) {
	for i, n := range siblings {
		row := n.Clone()
		row.Children = nil
		row.Position = i
		row.ParentID = nil
		if parentID != nil {
			row.ParentID = domain.StrPtr(*parentID)
		}
		*out = append(*out, row)
		if n.HasChildren() {
			flattenInto(out, n.Children, domain.StrPtr(n.ID))
		}
	}
}

// Row is one line of the rendered chart.
type Row struct {
	Task  *domain.Task
	Depth int
}

// Visible lists the rows a chart shows: every root, and the children of
// expanded nodes, depth-first.
func Visible(roots []*domain.Task) []Row {
	var rows []Row
	var walk func(nodes []*domain.Task, depth int)
	walk = func(nodes []*domain.Task, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{Task: n, Depth: depth})
			if n.HasChildren() && n.IsExpanded() {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(roots, 0)
	return rows
}

// Walk visits every node depth-first. Returning false from fn skips the
// node's subtree.
func Walk(roots []*domain.Task, fn func(n *domain.Task, depth int) bool) {
	var walk func(nodes []*domain.Task, depth int)
	walk = func(nodes []*domain.Task, depth int) {
		for _, n := range nodes {
			if fn(n, depth) && n.HasChildren() {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(roots, 0)
}

// Count returns the number of nodes in the tree.
func Count(roots []*domain.Task) int {
	total := 0
	Walk(roots, func(*domain.Task, int) bool {
		total++
		return true
	})
	return total
}

// Span returns the earliest start and latest end over all nodes. ok is false
// for an empty tree.
func Span(roots []*domain.Task) (start, end time.Time, ok bool) {
	Walk(roots, func(n *domain.Task, _ int) bool {
		if !ok || n.StartDate.Before(start) {
			start = n.StartDate
		}
		if !ok || n.EndDate.After(end) {
			end = n.EndDate
		}
		ok = true
		return true
	})
	return start, end, ok
}
