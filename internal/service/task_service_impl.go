package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/tasktree"
	"github.com/google/uuid"
)

// Defaults for nodes created from the toolbar.
const (
	DefaultTaskTitle    = "New task"
	DefaultSectionTitle = "New section"
	defaultTaskDays     = 7
)

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	owner    string
	observer UseCaseObserver
	now      func() time.Time
}

func NewTaskService(
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	owner string,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		uow:      uow,
		owner:    owner,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *taskService) Tree(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.tasks.ListByOwner(ctx, s.owner)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tasktree.Build(rows), nil
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != s.owner {
		return nil, fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
	}
	return t, nil
}

func (s *taskService) AddTask(ctx context.Context, parentID, title string) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"parent": parentID}
	defer func() { observe(ctx, s.observer, "add-task", startedAt, fields, err) }()

	var parent *string
	if parentID != "" {
		if _, err = s.Get(ctx, parentID); err != nil {
			return nil, fmt.Errorf("resolving parent: %w", err)
		}
		parent = &parentID
	}
	task, err = s.create(ctx, domain.KindTask, parent, title, DefaultTaskTitle)
	if task != nil {
		fields["id"] = task.ID
	}
	return task, err
}

func (s *taskService) AddSection(ctx context.Context, title string) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "add-section", startedAt, fields, err) }()

	task, err = s.create(ctx, domain.KindSection, nil, title, DefaultSectionTitle)
	if task != nil {
		fields["id"] = task.ID
	}
	return task, err
}

// create appends a one-week node starting today after its last sibling.
func (s *taskService) create(ctx context.Context, kind domain.TaskKind, parentID *string, title, fallback string) (*domain.Task, error) {
	pos, err := s.tasks.NextPosition(ctx, s.owner, parentID)
	if err != nil {
		return nil, err
	}
	today := domain.DateOnly(s.now())
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     domain.Coalesce(strings.TrimSpace(title), fallback),
		Kind:      kind,
		StartDate: today,
		EndDate:   today.AddDate(0, 0, defaultTaskDays),
		ParentID:  parentID,
		Position:  pos,
		OwnerID:   s.owner,
	}
	if kind == domain.KindSection {
		t.Expanded = domain.BoolPtr(true)
	}
	if err := s.tasks.Upsert(ctx, t); err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}
	return s.tasks.GetByID(ctx, t.ID)
}

// Save upserts a single node. Provisional identifiers are swapped for
// durable ones; the stored row is returned.
func (s *taskService) Save(ctx context.Context, t *domain.Task) (saved *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": t.ID}
	defer func() { observe(ctx, s.observer, "save-task", startedAt, fields, err) }()

	if err = t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}

	row := t.Clone()
	row.Children = nil
	row.OwnerID = s.owner
	row.StartDate = domain.DateOnly(row.StartDate)
	row.EndDate = domain.DateOnly(row.EndDate)
	if row.ParentID != nil {
		if _, err = s.Get(ctx, *row.ParentID); err != nil {
			return nil, fmt.Errorf("parent of %s: %w", row.Title, err)
		}
	}
	if domain.IsProvisionalID(row.ID) {
		row.ID = uuid.New().String()
		fields["assigned_id"] = row.ID
		if row.Position, err = s.tasks.NextPosition(ctx, s.owner, row.ParentID); err != nil {
			return nil, err
		}
	}

	if err = s.tasks.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("saving task: %w", err)
	}
	return s.Get(ctx, row.ID)
}

func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "delete-task", startedAt, map[string]any{"id": id}, err) }()

	return s.tasks.Delete(ctx, s.owner, id)
}

func (s *taskService) Reorder(ctx context.Context, movedID, targetID string) (roots []*domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"moved": movedID, "target": targetID}
	defer func() { observe(ctx, s.observer, "reorder", startedAt, fields, err) }()

	return s.applyAndPersist(ctx, func(roots []*domain.Task) []*domain.Task {
		return tasktree.Reorder(roots, movedID, targetID)
	}, fields)
}

func (s *taskService) ToggleExpanded(ctx context.Context, id string) (roots []*domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer func() { observe(ctx, s.observer, "toggle-expanded", startedAt, fields, err) }()

	return s.applyAndPersist(ctx, func(roots []*domain.Task) []*domain.Task {
		return tasktree.ToggleExpanded(roots, id)
	}, fields)
}

// applyAndPersist runs a pure tree edit against the current tree and
// persists the result. Edits that resolve to a no-op write nothing.
func (s *taskService) applyAndPersist(ctx context.Context, edit func([]*domain.Task) []*domain.Task, fields map[string]any) ([]*domain.Task, error) {
	roots, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	updated := edit(roots)
	if slices.Equal(updated, roots) {
		fields["noop"] = true
		return roots, nil
	}
	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *taskService) Persist(ctx context.Context, roots []*domain.Task) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"count": tasktree.Count(roots)}
	defer func() { observe(ctx, s.observer, "persist-tree", startedAt, fields, err) }()

	return s.persist(ctx, roots)
}

func (s *taskService) persist(ctx context.Context, roots []*domain.Task) error {
	rows := tasktree.Flatten(durableTree(roots))
	for _, r := range rows {
		r.OwnerID = s.owner
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaskRepo(tx).UpsertMany(ctx, rows)
	})
	if err != nil {
		return fmt.Errorf("persisting tree: %w", err)
	}
	return nil
}
