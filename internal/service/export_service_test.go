package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/sheet"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_ExportFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	section := testutil.NewTestTask("Phase", testutil.WithSection())
	require.NoError(t, repo.UpsertMany(ctx, []*domain.Task{
		section,
		testutil.NewTestTask("Work", testutil.WithParent(section.ID), testutil.WithProgress(30)),
	}))

	tasks := NewTaskService(repo, testutil.NewTestUoW(database), testutil.TestOwner)
	exp := NewExportService(tasks)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	n, err := exp.ExportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := sheet.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Section", records[1][0])
	assert.Equal(t, "Work", records[2][1])
	assert.Equal(t, "30", records[2][4])
}

func TestExportService_RejectsUnknownExtension(t *testing.T) {
	database := testutil.NewTestDB(t)
	tasks := NewTaskService(repository.NewSQLiteTaskRepo(database), testutil.NewTestUoW(database), testutil.TestOwner)

	_, err := NewExportService(tasks).ExportFile(context.Background(), filepath.Join(t.TempDir(), "out.txt"))
	assert.Error(t, err)
}
