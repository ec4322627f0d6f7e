package tasktree

import "github.com/alexanderramin/gantt/internal/domain"

// Location describes where a node sits in the tree.
type Location struct {
	Node     *domain.Task
	Parent   *domain.Task   // nil when Node is a root
	Siblings []*domain.Task // Parent.Children, or the root slice
	Index    int            // position of Node within Siblings
}

// Found reports whether the identifier resolved to a node.
func (l Location) Found() bool {
	return l.Node != nil
}

// Locate finds the first node with the given identifier, depth-first.
func Locate(roots []*domain.Task, id string) Location {
	loc, _ := locateIn(roots, nil, id)
	return loc
}

func locateIn(siblings []*domain.Task, parent *domain.Task, id string) (Location, bool) {
	for i, n := range siblings {
		if n.ID == id {
			return Location{Node: n, Parent: parent, Siblings: siblings, Index: i}, true
		}
		if n.HasChildren() {
			if loc, ok := locateIn(n.Children, n, id); ok {
				return loc, true
			}
		}
	}
	return Location{Index: -1}, false
}
