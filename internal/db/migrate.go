package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL DEFAULT '',
		parent_id    TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		task_type    TEXT NOT NULL DEFAULT 'task'
		             CHECK(task_type IN ('task','section')),
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		progress     INTEGER NOT NULL DEFAULT 0,
		dependencies TEXT NOT NULL DEFAULT '[]',
		position     INTEGER NOT NULL DEFAULT 0,
		is_expanded  INTEGER,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		owner_id    TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		updated_at  TEXT NOT NULL
	)`,

	// Per-task bar color
	`ALTER TABLE tasks ADD COLUMN color TEXT NOT NULL DEFAULT ''`,
}
