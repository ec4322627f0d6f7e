package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dbPath string, delay time.Duration) <-chan struct{} {
	t.Helper()
	fired := make(chan struct{}, 16)
	w, err := New(dbPath, delay, func() { fired <- struct{}{} })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, nil)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return fired
}

func TestWatcher_DebouncesWritesToDatabaseFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "gantt.db")
	require.NoError(t, os.WriteFile(dbPath, nil, 0o600))

	fired := startWatcher(t, dbPath, 50*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dbPath+"-wal", []byte{byte(i)}, 0o600))
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case <-fired:
		t.Fatal("burst of writes produced more than one notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "gantt.db")

	fired := startWatcher(t, dbPath, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600))
	require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("x"), 0o600))

	select {
	case <-fired:
		t.Fatal("unrelated file triggered a notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRefresher_NotifyWhileIdleRefreshes(t *testing.T) {
	var refreshes atomic.Int32
	r := NewRefresher(func(context.Context) error {
		refreshes.Add(1)
		return nil
	})

	require.NoError(t, r.Notify(context.Background()))
	require.NoError(t, r.Notify(context.Background()))
	assert.Equal(t, int32(2), refreshes.Load())
}

func TestRefresher_CoalescesNotificationsDuringMutation(t *testing.T) {
	var refreshes atomic.Int32
	r := NewRefresher(func(context.Context) error {
		refreshes.Add(1)
		return nil
	})
	ctx := context.Background()

	err := r.Mutate(ctx, func(ctx context.Context) error {
		// The store echoes our own write back several times.
		for i := 0; i < 3; i++ {
			require.NoError(t, r.Notify(ctx))
		}
		assert.Equal(t, int32(0), refreshes.Load(), "no refresh may run mid-mutation")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), refreshes.Load())

	require.NoError(t, r.Mutate(ctx, func(context.Context) error { return nil }))
	assert.Equal(t, int32(1), refreshes.Load(), "quiet mutation does not refresh")
}

func TestRefresher_MutationErrorWins(t *testing.T) {
	r := NewRefresher(func(context.Context) error { return assert.AnError })
	boom := context.DeadlineExceeded

	err := r.Mutate(context.Background(), func(ctx context.Context) error {
		_ = r.Notify(ctx)
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
