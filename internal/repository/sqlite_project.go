package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Get(ctx context.Context, ownerID string) (*domain.ProjectSettings, error) {
	query := `SELECT owner_id, name, start_date, end_date, updated_at FROM projects WHERE owner_id = ?`

	var p domain.ProjectSettings
	var startStr, endStr sql.NullString
	var updatedAtStr string
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&p.OwnerID, &p.Name, &startStr, &endStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project settings: %w", err)
	}

	p.StartDate = parseNullableTime(startStr, dateLayout)
	p.EndDate = parseNullableTime(endStr, dateLayout)
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.ProjectSettings) error {
	query := `INSERT INTO projects (owner_id, name, start_date, end_date, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.OwnerID,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting project settings: %w", err)
	}
	return nil
}
