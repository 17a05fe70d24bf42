package analytics

import "sync"

// MemoryStore keeps the snapshot in process memory. It is the default store
// when no database path is configured, and doubles as the test store.
type MemoryStore struct {
	mu   sync.Mutex
	snap *Snapshot

	// FailSaves forces Save to return an error, for exercising the
	// best-effort persistence path in tests.
	FailSaves bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: emptySnapshot()}
}

// Load returns a deep copy of the stored snapshot.
func (m *MemoryStore) Load() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySnapshot(m.snap), nil
}

// Save replaces the stored snapshot.
func (m *MemoryStore) Save(snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return errSaveFailed
	}
	m.snap = copySnapshot(snap)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

func copySnapshot(snap *Snapshot) *Snapshot {
	out := &Snapshot{
		Searches: make([]QueryRecord, len(snap.Searches)),
		Clicks:   make(map[string]int, len(snap.Clicks)),
	}
	copy(out.Searches, snap.Searches)
	for id, n := range snap.Clicks {
		out.Clicks[id] = n
	}
	return out
}
