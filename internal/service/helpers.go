package service

import (
	"errors"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

// durableTree returns a copy of roots in which every provisional identifier
// is replaced by a UUID. Flattening the copy carries the new identifiers
// into the children's parent links.
func durableTree(roots []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, len(roots))
	for i, n := range roots {
		c := n.Clone()
		if domain.IsProvisionalID(c.ID) {
			c.ID = uuid.New().String()
		}
		c.Children = durableTree(n.Children)
		out[i] = c
	}
	return out
}

// assignDurableIDs does the same for flat rows linked by ParentID, as
// produced by the sheet decoder. Parent links and dependencies that name a
// provisional row of the batch follow it to its new identifier; anything
// else is left as written.
func assignDurableIDs(rows []*domain.Task, owner string) {
	remap := make(map[string]string)
	for _, r := range rows {
		r.OwnerID = owner
		if domain.IsProvisionalID(r.ID) {
			id := uuid.New().String()
			if r.ID != "" {
				remap[r.ID] = id
			}
			r.ID = id
		}
	}

	for _, r := range rows {
		if r.ParentID != nil {
			if id, ok := remap[*r.ParentID]; ok {
				r.ParentID = &id
			}
		}
		for i, dep := range r.Dependencies {
			if id, ok := remap[dep]; ok {
				r.Dependencies[i] = id
			}
		}
	}
}

// isNotFound reports whether err is a missing-row error from the store.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
