package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
)

// minPrefixLen is the shortest ID prefix accepted on the command line.
const minPrefixLen = 4

// resolveTaskID resolves a task identifier which can be:
//   - A full ID (passed through when it exists)
//   - A unique ID prefix of at least four characters, as printed by list
//   - An exact, case-insensitive title
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}
	roots, err := app.Tasks.Tree(ctx)
	if err != nil {
		return "", err
	}
	if tasktree.Locate(roots, input).Found() {
		return input, nil
	}

	var byPrefix, byTitle []*domain.Task
	tasktree.Walk(roots, func(n *domain.Task, _ int) bool {
		if len(input) >= minPrefixLen && strings.HasPrefix(n.ID, input) {
			byPrefix = append(byPrefix, n)
		}
		if strings.EqualFold(n.Title, input) {
			byTitle = append(byTitle, n)
		}
		return true
	})

	for _, matches := range [][]*domain.Task{byPrefix, byTitle} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0].ID, nil
		default:
			return "", fmt.Errorf("%q matches %d tasks; use a longer ID", input, len(matches))
		}
	}
	return "", fmt.Errorf("task %q not found", input)
}
