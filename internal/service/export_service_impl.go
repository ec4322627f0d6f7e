package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/sheet"
)

type exportService struct {
	tasks    TaskService
	observer UseCaseObserver
}

func NewExportService(tasks TaskService, observers ...UseCaseObserver) ExportService {
	return &exportService{tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

// ExportFile writes the current tree to path, encoded by its extension, and
// returns the number of rows written.
func (s *exportService) ExportFile(ctx context.Context, path string) (n int, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "export", startedAt, map[string]any{"path": path, "rows": n}, err)
	}()

	if _, err = sheet.FormatFromPath(path); err != nil {
		return 0, err
	}
	roots, err := s.tasks.Tree(ctx)
	if err != nil {
		return 0, err
	}
	records := sheet.ToRecords(roots)
	if err = sheet.WriteFile(path, records); err != nil {
		return 0, fmt.Errorf("exporting: %w", err)
	}
	return len(records) - 1, nil
}
