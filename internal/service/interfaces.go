package service

import (
	"context"

	"github.com/alexanderramin/gantt/internal/domain"
)

// TaskService owns the task tree of one owner. Reorder and ToggleExpanded
// return the updated tree they persisted; every other mutation is followed
// by a fresh Tree call at the caller.
type TaskService interface {
	Tree(ctx context.Context) ([]*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	AddTask(ctx context.Context, parentID, title string) (*domain.Task, error)
	AddSection(ctx context.Context, title string) (*domain.Task, error)
	Save(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, movedID, targetID string) ([]*domain.Task, error)
	ToggleExpanded(ctx context.Context, id string) ([]*domain.Task, error)
	Persist(ctx context.Context, roots []*domain.Task) error
}

type ProjectService interface {
	Get(ctx context.Context) (*domain.ProjectSettings, error)
	Update(ctx context.Context, p *domain.ProjectSettings) error
}

// ImportResult summarizes one spreadsheet import.
type ImportResult struct {
	Tasks    []*domain.Task
	Sections int
	Leaves   int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportRows(ctx context.Context, rows []*domain.Task) (*ImportResult, error)
}

type ExportService interface {
	ExportFile(ctx context.Context, path string) (int, error)
}
