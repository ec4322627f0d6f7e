package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.TestOwner)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_UpsertRoundTrip(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProjectSettings("Launch")
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Name)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)

	start, end := testutil.Day(2025, 1, 1), testutil.Day(2025, 3, 31)
	p.Name = "Launch v2"
	p.StartDate, p.EndDate = &start, &end
	require.NoError(t, repo.Upsert(ctx, p))

	got, err = repo.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Equal(t, "Launch v2", got.Name)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, start, *got.StartDate)
	assert.Equal(t, end, *got.EndDate)
	assert.True(t, got.HasExplicitRange())
}
