package search

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned by Search when a newer query arrived during the
// debounce window. Only the most recent query in a burst executes.
var ErrSuperseded = errors.New("search superseded by a newer query")

// debouncer is a single-slot latest-request register. Each wait call cancels
// the previous pending one; superseded waiters are released immediately.
// An execution already past the debounce window is never cancelled.
type debouncer struct {
	d      time.Duration
	mu     sync.Mutex
	cancel chan struct{}
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{d: d}
}

// wait blocks for the quiet period. It returns nil when the caller survived
// the window, ErrSuperseded when a newer call displaced it, or the context
// error on cancellation.
func (b *debouncer) wait(ctx context.Context) error {
	if b.d <= 0 {
		return nil
	}

	b.mu.Lock()
	if b.cancel != nil {
		close(b.cancel)
	}
	slot := make(chan struct{})
	b.cancel = slot
	b.mu.Unlock()

	timer := time.NewTimer(b.d)
	defer timer.Stop()

	release := func() {
		b.mu.Lock()
		if b.cancel == slot {
			b.cancel = nil
		}
		b.mu.Unlock()
	}

	select {
	case <-timer.C:
		release()
		return nil
	case <-slot:
		return ErrSuperseded
	case <-ctx.Done():
		release()
		return ctx.Err()
	}
}
