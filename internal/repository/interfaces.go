package repository

import (
	"context"

	"github.com/alexanderramin/gantt/internal/domain"
)

// TaskRepo is the row store behind the task tree. Rows come back flat;
// callers assemble them with tasktree.Build.
type TaskRepo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Upsert(ctx context.Context, t *domain.Task) error
	UpsertMany(ctx context.Context, tasks []*domain.Task) error
	NextPosition(ctx context.Context, ownerID string, parentID *string) (int, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type ProjectRepo interface {
	Get(ctx context.Context, ownerID string) (*domain.ProjectSettings, error)
	Upsert(ctx context.Context, p *domain.ProjectSettings) error
}
