package testutil

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// TestOwner is the owner every fixture belongs to unless overridden.
const TestOwner = "tester"

// Day returns midnight UTC of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Task options
type TaskOption func(*domain.Task)

func WithParent(id string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &id
	}
}

func WithSection() TaskOption {
	return func(t *domain.Task) {
		t.Kind = domain.KindSection
	}
}

func WithDates(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithPosition(p int) TaskOption {
	return func(t *domain.Task) {
		t.Position = p
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func WithDependencies(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = ids
	}
}

func WithExpanded(v bool) TaskOption {
	return func(t *domain.Task) {
		t.Expanded = &v
	}
}

func WithColor(c string) TaskOption {
	return func(t *domain.Task) {
		t.Color = c
	}
}

func WithOwner(owner string) TaskOption {
	return func(t *domain.Task) {
		t.OwnerID = owner
	}
}

func WithID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

// NewTestTask builds a one-week leaf task owned by TestOwner.
func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	start := Day(2025, 11, 4)
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Kind:      domain.KindTask,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
		OwnerID:   TestOwner,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestProjectSettings builds settings for TestOwner without a pinned range.
func NewTestProjectSettings(name string) *domain.ProjectSettings {
	return &domain.ProjectSettings{
		OwnerID:   TestOwner,
		Name:      name,
		UpdatedAt: time.Now().UTC(),
	}
}
