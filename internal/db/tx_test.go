package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertProject(ctx context.Context, tx db.DBTX, owner, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO projects (owner_id, name, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z')`,
		owner, name)
	return err
}

// projectName reads through a fresh transaction; the pool holds one
// connection for in-memory databases.
func projectName(t *testing.T, uow *db.SQLiteUnitOfWork, owner string) (string, bool) {
	t.Helper()
	var name string
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT name FROM projects WHERE owner_id = ?`, owner).Scan(&name); err != nil {
			return nil
		}
		found = true
		return nil
	})
	require.NoError(t, err)
	return name, found
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertProject(ctx, tx, "alice", "Launch")
	})
	require.NoError(t, err)

	name, found := projectName(t, uow, "alice")
	assert.True(t, found)
	assert.Equal(t, "Launch", name)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow := openUoW(t)
	errBoom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "bob", "Draft"); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, found := projectName(t, uow, "bob")
	assert.False(t, found, "insert must not survive a failed unit of work")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProject(ctx, tx, "carol", "Panicky")
			panic("boom")
		})
	})

	_, found := projectName(t, uow, "carol")
	assert.False(t, found)
}
