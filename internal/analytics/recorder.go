package analytics

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Recorder is the single owner of the mutable analytics state: a bounded
// query log and a per-item click count map. Persistence runs on a background
// worker pool so a stalled store can never delay result delivery; save
// failures are logged and swallowed.
type Recorder struct {
	mu       sync.RWMutex
	searches []QueryRecord
	clicks   map[string]int

	store  Store
	pool   *ants.Pool
	dirty  atomic.Bool
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder backed by store. Previously persisted state
// is loaded; a load failure resets to empty analytics rather than erroring.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryStore()
	}

	r := &Recorder{
		clicks: make(map[string]int),
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	// A single nonblocking worker serializes saves; when it is busy the
	// pending save is dropped and the next mutation persists the newer state.
	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		logger.Warn("analytics worker pool unavailable, persistence disabled", zap.Error(err))
	}
	r.pool = pool

	snap, err := store.Load()
	if err != nil {
		logger.Warn("failed to load analytics, starting empty", zap.Error(err))
		return r
	}
	r.searches = snap.Searches
	if snap.Clicks != nil {
		r.clicks = snap.Clicks
	}
	return r
}

// WithClock overrides the time source, for deterministic tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// RecordQuery appends an entry to the bounded query log and persists.
func (r *Recorder) RecordQuery(query string) {
	r.mu.Lock()
	r.searches = append(r.searches, QueryRecord{
		ID:        uuid.NewString(),
		Query:     query,
		Timestamp: r.now(),
	})
	if len(r.searches) > MaxLogEntries {
		r.searches = r.searches[len(r.searches)-MaxLogEntries:]
	}
	r.mu.Unlock()
	r.persist()
}

// RecordClick increments the click count for itemID. When query matches the
// most recent log entry, that entry's result count is incremented too.
func (r *Recorder) RecordClick(itemID, query string) {
	r.mu.Lock()
	r.clicks[itemID]++
	if n := len(r.searches); n > 0 && r.searches[n-1].Query == query {
		r.searches[n-1].ResultCount++
	}
	r.mu.Unlock()
	r.persist()
}

// Clicks returns the cumulative click count for itemID. Implements the
// scorer's popularity signal.
func (r *Recorder) Clicks(itemID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clicks[itemID]
}

// PopularItems returns the top n item ids by click count, most clicked first.
// Ties are broken by item id for stable output.
func (r *Recorder) PopularItems(n int) []PopularItem {
	r.mu.RLock()
	items := make([]PopularItem, 0, len(r.clicks))
	for id, count := range r.clicks {
		items = append(items, PopularItem{ItemID: id, Clicks: count})
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].Clicks != items[j].Clicks {
			return items[i].Clicks > items[j].Clicks
		}
		return items[i].ItemID < items[j].ItemID
	})
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// Summary returns the recent query log and popular items for reporting.
func (r *Recorder) Summary(popularLimit int) Summary {
	r.mu.RLock()
	recent := make([]QueryRecord, len(r.searches))
	copy(recent, r.searches)
	r.mu.RUnlock()

	return Summary{
		RecentQueries: recent,
		PopularItems:  r.PopularItems(popularLimit),
	}
}

// LogLen returns the current query log length.
func (r *Recorder) LogLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.searches)
}

// persist marks the state dirty and wakes the save worker. When the worker
// is already running, the pending submit is dropped; the running flush loop
// observes the dirty flag and re-saves the newer state.
func (r *Recorder) persist() {
	if r.pool == nil {
		return
	}
	r.dirty.Store(true)
	if err := r.pool.Submit(r.flush); err != nil && !errors.Is(err, ants.ErrPoolOverload) {
		r.logger.Warn("failed to schedule analytics save", zap.Error(err))
	}
}

// flush saves snapshots until the state is clean. Runs on the worker pool.
func (r *Recorder) flush() {
	for r.dirty.Swap(false) {
		if err := r.store.Save(r.snapshot()); err != nil {
			r.logger.Warn("failed to persist analytics", zap.Error(err))
			return
		}
	}
}

// snapshot copies the current state for persistence.
func (r *Recorder) snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := &Snapshot{
		Searches: make([]QueryRecord, len(r.searches)),
		Clicks:   make(map[string]int, len(r.clicks)),
	}
	copy(snap.Searches, r.searches)
	for id, n := range r.clicks {
		snap.Clicks[id] = n
	}
	return snap
}

// Close waits for in-flight saves, flushes any still-dirty state, and closes
// the store.
func (r *Recorder) Close() error {
	if r.pool != nil {
		_ = r.pool.ReleaseTimeout(time.Second)
	}
	r.flush()
	return r.store.Close()
}
