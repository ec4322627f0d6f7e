package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentAccess_ReadDuringBulkWrite(t *testing.T) {
	database, _ := testutil.NewFileTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	reader := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for batch := 0; batch < 10; batch++ {
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				section := testutil.NewTestTask(fmt.Sprintf("Section %d", batch), testutil.WithSection(), testutil.WithPosition(batch))
				child := testutil.NewTestTask("Child", testutil.WithParent(section.ID))
				return NewSQLiteTaskRepo(tx).UpsertMany(ctx, []*domain.Task{section, child})
			})
			if err != nil {
				t.Errorf("writer batch %d: %v", batch, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				tasks, err := reader.ListByOwner(ctx, testutil.TestOwner)
				if err != nil {
					t.Errorf("reader %d: %v", id, err)
					return
				}
				// Batches commit atomically, so sections and children arrive in pairs.
				if len(tasks)%2 != 0 {
					t.Errorf("reader %d saw a half-written batch: %d rows", id, len(tasks))
					return
				}
			}
		}(r)
	}
	wg.Wait()

	tasks, err := reader.ListByOwner(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Len(t, tasks, 20)
}
