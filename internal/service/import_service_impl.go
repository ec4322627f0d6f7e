package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/sheet"
)

type importService struct {
	uow      db.UnitOfWork
	owner    string
	observer UseCaseObserver
	now      func() time.Time
}

func NewImportService(uow db.UnitOfWork, owner string, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		owner:    owner,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	records, err := sheet.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportRows(ctx, sheet.FromRecords(records, s.now()))
}

// ImportRows stores rows produced by sheet.FromRecords after the owner's
// existing roots, all in one transaction.
func (s *importService) ImportRows(ctx context.Context, rows []*domain.Task) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"rows": len(rows)}
	defer func() { observe(ctx, s.observer, "import", startedAt, fields, err) }()

	if len(rows) == 0 {
		return &ImportResult{}, nil
	}

	stored := make([]*domain.Task, len(rows))
	for i, r := range rows {
		stored[i] = r.Clone()
		stored[i].Children = nil
	}
	assignDurableIDs(stored, s.owner)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		offset, err := txTasks.NextPosition(ctx, s.owner, nil)
		if err != nil {
			return err
		}
		for _, t := range stored {
			if t.ParentID == nil {
				t.Position += offset
			}
		}
		if err := txTasks.UpsertMany(ctx, stored); err != nil {
			return fmt.Errorf("importing rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{Tasks: stored}
	for _, t := range stored {
		if t.IsSection() {
			result.Sections++
		} else {
			result.Leaves++
		}
	}
	fields["sections"] = result.Sections
	fields["tasks"] = result.Leaves
	return result, nil
}
