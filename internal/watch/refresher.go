package watch

import (
	"context"
	"sync"
)

// Refresher serializes local mutations and store-driven refreshes. A change
// notification that arrives while a mutation is running is held back and
// answered by one refresh once the last running mutation finishes, so a
// refresh never overwrites an optimistic tree with a half-written store.
type Refresher struct {
	refresh func(ctx context.Context) error

	run sync.Mutex // held for the duration of a mutation or refresh

	mu       sync.Mutex
	mutating int
	pending  bool
}

// NewRefresher wraps the function that reloads state from the store.
func NewRefresher(refresh func(ctx context.Context) error) *Refresher {
	return &Refresher{refresh: refresh}
}

// Notify handles a change notification.
func (r *Refresher) Notify(ctx context.Context) error {
	r.mu.Lock()
	if r.mutating > 0 {
		r.pending = true
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	r.run.Lock()
	defer r.run.Unlock()
	return r.refresh(ctx)
}

// Mutate runs fn exclusively. Notifications that arrived meanwhile trigger a
// single refresh after fn returns.
func (r *Refresher) Mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	r.mutating++
	r.mu.Unlock()

	r.run.Lock()
	defer r.run.Unlock()

	err := fn(ctx)

	r.mu.Lock()
	r.mutating--
	flush := r.pending && r.mutating == 0
	if flush {
		r.pending = false
	}
	r.mu.Unlock()

	if flush {
		if rerr := r.refresh(ctx); err == nil {
			err = rerr
		}
	}
	return err
}
