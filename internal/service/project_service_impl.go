package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	owner    string
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, owner string, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		owner:    owner,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Get returns the owner's settings, or empty settings when none were saved.
func (s *projectService) Get(ctx context.Context) (*domain.ProjectSettings, error) {
	p, err := s.projects.Get(ctx, s.owner)
	if err != nil {
		if isNotFound(err) {
			return &domain.ProjectSettings{OwnerID: s.owner}, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, p *domain.ProjectSettings) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "update-project", startedAt, map[string]any{"name": p.Name}, err)
	}()

	if err = p.Validate(); err != nil {
		return fmt.Errorf("invalid project settings: %w", err)
	}
	p.OwnerID = s.owner
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Upsert(ctx, p)
}
