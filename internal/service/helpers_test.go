package service

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/tasktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurableTree_ReplacesProvisionalAndEmptyIDs(t *testing.T) {
	section := &domain.Task{ID: "", Title: "Section", Kind: domain.KindSection}
	child := &domain.Task{ID: "new-1", Title: "Child", Kind: domain.KindTask}
	kept := &domain.Task{ID: "stable", Title: "Kept", Kind: domain.KindTask}
	section.Children = []*domain.Task{child}

	out := durableTree([]*domain.Task{section, kept})

	assert.Equal(t, "", section.ID, "input is not mutated")
	assert.Equal(t, "new-1", child.ID)

	rows := tasktree.Flatten(out)
	require.Len(t, rows, 3)
	assert.False(t, domain.IsProvisionalID(rows[0].ID))
	assert.False(t, domain.IsProvisionalID(rows[1].ID))
	require.NotNil(t, rows[1].ParentID)
	assert.Equal(t, rows[0].ID, *rows[1].ParentID, "child follows its parent's new id")
	assert.Equal(t, "stable", rows[2].ID)
}

func TestAssignDurableIDs_RemapsParentLinks(t *testing.T) {
	rows := []*domain.Task{
		{ID: "new-1", Kind: domain.KindSection},
		{ID: "new-2", ParentID: domain.StrPtr("new-1")},
		{ID: "existing", ParentID: domain.StrPtr("new-1")},
		{ID: "new-3", ParentID: domain.StrPtr("existing")},
	}

	assignDurableIDs(rows, "owner-1")

	for _, r := range rows {
		assert.Equal(t, "owner-1", r.OwnerID)
	}
	assert.False(t, domain.IsProvisionalID(rows[0].ID))
	assert.Equal(t, rows[0].ID, *rows[1].ParentID)
	assert.Equal(t, rows[0].ID, *rows[2].ParentID)
	assert.Equal(t, "existing", rows[2].ID)
	assert.Equal(t, "existing", *rows[3].ParentID)
	assert.NotEqual(t, rows[1].ID, rows[3].ID)
}

func TestAssignDurableIDs_RemapsDependencies(t *testing.T) {
	rows := []*domain.Task{
		{ID: "new-1", Dependencies: []string{"new-2", "external"}},
		{ID: "new-2", Dependencies: []string{"new-1"}},
	}

	assignDurableIDs(rows, "owner-1")

	assert.Equal(t, []string{rows[1].ID, "external"}, rows[0].Dependencies, "forward references are remapped too")
	assert.Equal(t, []string{rows[0].ID}, rows[1].Dependencies)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(fmt.Errorf("task x: %w", repository.ErrNotFound)))
	assert.False(t, isNotFound(fmt.Errorf("boom")))
}
