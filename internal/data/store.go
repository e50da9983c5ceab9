package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wrenlabs/wren/internal/biz/domain"

	_ "modernc.org/sqlite"
)

// Store implements repo.RecordRepo and repo.CacheRepo on one SQLite
// database. Execution records are the idempotence gate for the pipeline;
// the kv table holds search checkpoints between polling cycles.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if necessary creates) the agent database
func NewStore(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS execution_records (
			id TEXT PRIMARY KEY,
			tweet_id TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			text TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'twitter',
			actions TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create execution_records table: %w", err)
	}

	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_records_recorded_at ON execution_records(recorded_at)`)
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_records_tweet ON execution_records(tweet_id, agent_id)`)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_cache (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv_cache table: %w", err)
	}

	fmt.Println("[Store] Database initialized")
	return &Store{db: db}, nil
}

// ========== Execution Record Operations ==========

// HasRecord reports whether a record with the given ID exists
func (s *Store) HasRecord(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM execution_records WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check record: %w", err)
	}
	return true, nil
}

// SaveRecord persists an execution record. The first record for an ID wins;
// re-saving is a no-op so a record is never overwritten across cycles.
func (s *Store) SaveRecord(ctx context.Context, rec *domain.ExecutionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO execution_records (id, tweet_id, agent_id, text, url, source, actions, created_at, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, rec.TweetID, rec.AgentID, rec.Text, rec.URL, rec.Source,
		strings.Join(rec.Actions, ","), rec.CreatedAt.Unix(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// RecentRecords lists the most recently written records
func (s *Store) RecentRecords(ctx context.Context, limit int) ([]*domain.ExecutionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tweet_id, agent_id, text, url, source, actions, created_at
		FROM execution_records
		ORDER BY recorded_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*domain.ExecutionRecord
	for rows.Next() {
		var rec domain.ExecutionRecord
		var actions string
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.TweetID, &rec.AgentID, &rec.Text, &rec.URL, &rec.Source, &actions, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		if actions != "" {
			rec.Actions = strings.Split(actions, ",")
		}
		records = append(records, &rec)
	}
	return records, nil
}

// CountRecords returns the total number of execution records
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM execution_records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// ========== KV Cache Operations ==========

// Get returns the cached value, or "" when the key is absent
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_cache WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cache key: %w", err)
	}
	return value, nil
}

// Set stores a value under key, replacing any previous value
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_cache (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_cache WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache key: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
