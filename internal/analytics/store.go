// Package analytics records issued queries and result-click events, persists
// them best-effort, and exposes aggregate popularity signals.
package analytics

import "time"

// MaxLogEntries bounds the query log; the oldest entry is evicted first.
const MaxLogEntries = 100

// QueryRecord is one entry of the bounded query log.
type QueryRecord struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"result_count"`
}

// PopularItem pairs an item id with its cumulative click count.
type PopularItem struct {
	ItemID string `json:"item_id"`
	Clicks int    `json:"clicks"`
}

// Summary is the aggregate view handed to reporting consumers.
type Summary struct {
	RecentQueries []QueryRecord `json:"recent_queries"`
	PopularItems  []PopularItem `json:"popular_items"`
}

// Snapshot is the full persisted analytics state. The wire shape is a map
// whose keys are either the literal "searches" (the query log) or an item id
// (its click count).
type Snapshot struct {
	Searches []QueryRecord
	Clicks   map[string]int
}

// Store persists analytics snapshots. Implementations must tolerate absent,
// corrupt, or foreign-shaped data on Load by returning an empty snapshot
// rather than an error; errors are reserved for storage-layer failures.
type Store interface {
	Load() (*Snapshot, error)
	Save(snap *Snapshot) error
	Close() error
}

func emptySnapshot() *Snapshot {
	return &Snapshot{Clicks: make(map[string]int)}
}
