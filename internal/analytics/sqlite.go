package analytics

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var errSaveFailed = errors.New("analytics save failed")

// searchesKey is the reserved key holding the query log; every other key is
// an item id mapped to its click count.
const searchesKey = "searches"

// SQLiteStore persists analytics as a key-value table in SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS analytics (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Load reads every key-value row into a snapshot. Corrupt or foreign-shaped
// values are logged and skipped so that bad persisted data resets the
// affected state instead of failing the caller.
func (s *SQLiteStore) Load() (*Snapshot, error) {
	rows, err := s.db.Query(`SELECT key, value FROM analytics`)
	if err != nil {
		return nil, fmt.Errorf("failed to read analytics: %w", err)
	}
	defer rows.Close()

	snap := emptySnapshot()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		if key == searchesKey {
			var searches []QueryRecord
			if err := json.Unmarshal([]byte(value), &searches); err != nil {
				s.logger.Warn("corrupt query log in analytics store, resetting", zap.Error(err))
				continue
			}
			if len(searches) > MaxLogEntries {
				searches = searches[len(searches)-MaxLogEntries:]
			}
			snap.Searches = searches
			continue
		}
		count, err := strconv.Atoi(value)
		if err != nil || count < 0 {
			s.logger.Warn("corrupt click count in analytics store, skipping",
				zap.String("key", key), zap.String("value", value))
			continue
		}
		snap.Clicks[key] = count
	}
	return snap, rows.Err()
}

// Save writes the snapshot transactionally, replacing all prior rows.
func (s *SQLiteStore) Save(snap *Snapshot) error {
	payload, err := json.Marshal(snap.Searches)
	if err != nil {
		return fmt.Errorf("failed to marshal query log: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM analytics`); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO analytics (key, value) VALUES (?, ?)`,
		searchesKey, string(payload)); err != nil {
		return err
	}
	for id, count := range snap.Clicks {
		if id == searchesKey {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO analytics (key, value) VALUES (?, ?)`,
			id, strconv.Itoa(count)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
