package tasktree

import (
	"slices"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Reorder moves movedID to the index currently held by targetID within their
// shared sibling list. Unresolved identifiers, moving a node onto itself, and
// moves between different parents leave the tree unchanged.
func Reorder(roots []*domain.Task, movedID, targetID string) []*domain.Task {
	if movedID == targetID {
		return roots
	}
	moved := Locate(roots, movedID)
	target := Locate(roots, targetID)
	if !moved.Found() || !target.Found() || moved.Parent != target.Parent {
		return roots
	}

	reordered := moveElement(moved.Siblings, moved.Index, target.Index)
	if moved.Parent == nil {
		return reordered
	}
	// Splice by identity: identifiers of unsaved parents may be empty and
	// collide with other unsaved nodes.
	parent := moved.Parent
	out, _ := updateNode(roots, func(n *domain.Task) bool { return n == parent }, func(p *domain.Task) *domain.Task {
		c := p.Clone()
		c.Children = reordered
		return c
	})
	return out
}

func moveElement(s []*domain.Task, from, to int) []*domain.Task {
	out := slices.Clone(s)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

// ToggleExpanded returns a tree in which the node's expanded flag is
// inverted. An unknown identifier returns the tree unchanged.
func ToggleExpanded(roots []*domain.Task, id string) []*domain.Task {
	out, _ := updateNode(roots, hasID(id), func(n *domain.Task) *domain.Task {
		c := n.Clone()
		c.Expanded = domain.BoolPtr(!n.IsExpanded())
		return c
	})
	return out
}

// Replace swaps the node carrying updated.ID for updated, keeping the
// existing node's children. ok is false when no node matched.
func Replace(roots []*domain.Task, updated *domain.Task) ([]*domain.Task, bool) {
	return updateNode(roots, hasID(updated.ID), func(n *domain.Task) *domain.Task {
		c := updated.Clone()
		c.Children = n.Children
		return c
	})
}

// Remove drops every node with the given identifier along with its subtree.
func Remove(roots []*domain.Task, id string) []*domain.Task {
	out, _ := removeFrom(roots, id)
	return out
}

func removeFrom(nodes []*domain.Task, id string) ([]*domain.Task, bool) {
	changed := false
	out := make([]*domain.Task, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == id {
			changed = true
			continue
		}
		if n.HasChildren() {
			if children, ok := removeFrom(n.Children, id); ok {
				c := n.Clone()
				c.Children = children
				out = append(out, c)
				changed = true
				continue
			}
		}
		out = append(out, n)
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

func hasID(id string) func(*domain.Task) bool {
	return func(n *domain.Task) bool { return n.ID == id }
}

// updateNode copies the path from the roots to the first node that match
// accepts, depth-first, replacing that node with fn's result.
func updateNode(nodes []*domain.Task, match func(*domain.Task) bool, fn func(*domain.Task) *domain.Task) ([]*domain.Task, bool) {
	for i, n := range nodes {
		if match(n) {
			out := slices.Clone(nodes)
			out[i] = fn(n)
			return out, true
		}
		if !n.HasChildren() {
			continue
		}
		if children, ok := updateNode(n.Children, match, fn); ok {
			c := n.Clone()
			c.Children = children
			out := slices.Clone(nodes)
			out[i] = c
			return out, true
		}
	}
	return nodes, false
}
