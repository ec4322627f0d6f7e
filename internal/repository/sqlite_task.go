package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, owner_id, parent_id, title, task_type, start_date, end_date,
		progress, dependencies, color, position, is_expanded`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ? ORDER BY position, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by owner: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

// Upsert inserts the row or updates it in place. ON CONFLICT keeps the
// existing row, so child rows referencing it are never cascaded away.
// A row that exists under another owner is left alone and reported as
// ErrNotFound, the same answer Get and Delete give for it.
func (r *SQLiteTaskRepo) Upsert(ctx context.Context, t *domain.Task) error {
	deps, err := encodeIDs(t.Dependencies)
	if err != nil {
		return fmt.Errorf("encoding dependencies of %s: %w", t.ID, err)
	}
	now := nowUTC()
	query := `INSERT INTO tasks (id, owner_id, parent_id, title, task_type, start_date, end_date,
		progress, dependencies, color, position, is_expanded, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id = excluded.parent_id,
			title = excluded.title,
			task_type = excluded.task_type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			progress = excluded.progress,
			dependencies = excluded.dependencies,
			color = excluded.color,
			position = excluded.position,
			is_expanded = excluded.is_expanded,
			updated_at = excluded.updated_at
		WHERE tasks.owner_id = excluded.owner_id`
	res, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		t.ParentID, // *string: nil becomes SQL NULL
		t.Title,
		string(t.Kind),
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.Progress,
		deps,
		t.Color,
		t.Position,
		nullableBoolToValue(t.Expanded),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting task %s: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("upserting task %s: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// UpsertMany writes rows in order. Parents must precede their children,
// which is the order tasktree.Flatten produces.
func (r *SQLiteTaskRepo) UpsertMany(ctx context.Context, tasks []*domain.Task) error {
	for _, t := range tasks {
		if err := r.Upsert(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// NextPosition returns one past the highest position in the sibling group.
func (r *SQLiteTaskRepo) NextPosition(ctx context.Context, ownerID string, parentID *string) (int, error) {
	var next int
	var err error
	if parentID == nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE owner_id = ? AND parent_id IS NULL`,
			ownerID).Scan(&next)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE owner_id = ? AND parent_id = ?`,
			ownerID, *parentID).Scan(&next)
	}
	if err != nil {
		return 0, fmt.Errorf("computing next position: %w", err)
	}
	return next, nil
}

// Delete removes the row and, through the parent_id cascade, its subtree.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var kindStr, startStr, endStr, depsStr string
	var parentID sql.NullString
	var expanded sql.NullInt64

	err := s.Scan(
		&t.ID, &t.OwnerID, &parentID, &t.Title, &kindStr, &startStr, &endStr,
		&t.Progress, &depsStr, &t.Color, &t.Position, &expanded,
	)
	if err != nil {
		return nil, err
	}

	t.Kind = domain.TaskKind(kindStr)
	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	if expanded.Valid {
		t.Expanded = domain.BoolPtr(intToBool(int(expanded.Int64)))
	}

	if t.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if t.Dependencies, err = decodeIDs(depsStr); err != nil {
		return nil, fmt.Errorf("decoding dependencies: %w", err)
	}
	return &t, nil
}
