package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_GetDefaultsThenUpdate(t *testing.T) {
	svc := NewProjectService(repository.NewSQLiteProjectRepo(testutil.NewTestDB(t)), testutil.TestOwner)
	ctx := context.Background()

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestOwner, p.OwnerID)
	assert.Equal(t, domain.DefaultProjectName, p.DisplayName())
	assert.False(t, p.HasExplicitRange())

	start, end := testutil.Day(2025, 1, 1), testutil.Day(2025, 2, 1)
	p.Name = "Harbor"
	p.StartDate, p.EndDate = &start, &end
	require.NoError(t, svc.Update(ctx, p))

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Harbor", got.DisplayName())
	assert.True(t, got.HasExplicitRange())
}

func TestProjectService_UpdateRejectsInvertedRange(t *testing.T) {
	svc := NewProjectService(repository.NewSQLiteProjectRepo(testutil.NewTestDB(t)), testutil.TestOwner)

	start, end := testutil.Day(2025, 2, 1), testutil.Day(2025, 1, 1)
	err := svc.Update(context.Background(), &domain.ProjectSettings{StartDate: &start, EndDate: &end})
	assert.Error(t, err)
}
