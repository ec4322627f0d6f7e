package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProvisionalID(t *testing.T) {
	cases := []struct {
		id          string
		provisional bool
	}{
		{"", true},
		{"new-1730000000", true},
		{NewProvisionalID(time.Now()), true},
		{"550e8400-e29b-41d4-a716-446655440000", false},
		{"renew-1", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.provisional, IsProvisionalID(tc.id), "id=%q", tc.id)
	}
}

func TestParseTaskKind(t *testing.T) {
	assert.Equal(t, KindSection, ParseTaskKind("Section"))
	assert.Equal(t, KindSection, ParseTaskKind("  SECTION "))
	assert.Equal(t, KindTask, ParseTaskKind("Task"))
	assert.Equal(t, KindTask, ParseTaskKind(""))
	assert.Equal(t, KindTask, ParseTaskKind("milestone"))
}

func TestTask_Validate(t *testing.T) {
	task := &Task{Title: "Deploy", Kind: KindTask}
	assert.NoError(t, task.Validate())

	task.Title = "   "
	err := task.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")

	task.Title = "Deploy"
	task.Kind = "epic"
	err = task.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task|section")
}

func TestTask_CloneDoesNotShareFields(t *testing.T) {
	parent := "p1"
	orig := &Task{
		ID:           "t1",
		Dependencies: []string{"a"},
		ParentID:     &parent,
		Expanded:     BoolPtr(true),
	}
	c := orig.Clone()
	c.Dependencies[0] = "b"
	*c.ParentID = "p2"
	*c.Expanded = false

	assert.Equal(t, "a", orig.Dependencies[0])
	assert.Equal(t, "p1", *orig.ParentID)
	assert.True(t, orig.IsExpanded())
}

func TestTask_DurationDaysIsInclusive(t *testing.T) {
	task := &Task{
		StartDate: time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, task.DurationDays())

	task.EndDate = task.StartDate
	assert.Equal(t, 1, task.DurationDays())
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 3, 3, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
}

func TestProjectSettings_Validate(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	p := &ProjectSettings{StartDate: &start, EndDate: &end}
	require.Error(t, p.Validate())

	end = start.AddDate(0, 1, 0)
	assert.NoError(t, p.Validate())
	assert.True(t, p.HasExplicitRange())
	assert.Equal(t, DefaultProjectName, p.DisplayName())
}

func TestCoalesceAndDeref(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, 3, Coalesce(0, 3))

	assert.True(t, Deref(BoolPtr(true), false))
	assert.False(t, Deref[bool](nil, false))
	assert.Equal(t, "x", Deref(StrPtr("x"), "fallback"))
}
