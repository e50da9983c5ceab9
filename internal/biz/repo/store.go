package repo

import (
	"context"

	"github.com/wrenlabs/wren/internal/biz/domain"
)

// RecordRepo is the execution-record store interface (SQLite). Record
// existence is the dedup gate: it is checked before any decision work.
type RecordRepo interface {
	// HasRecord reports whether a record with the given ID exists
	HasRecord(ctx context.Context, id string) (bool, error)

	// SaveRecord persists an execution record. Saving an ID that already
	// exists is a no-op; the first record wins.
	SaveRecord(ctx context.Context, rec *domain.ExecutionRecord) error

	// RecentRecords lists the most recently written records
	RecentRecords(ctx context.Context, limit int) ([]*domain.ExecutionRecord, error)
}

// CacheRepo is a small key-value store used for pagination checkpoints
type CacheRepo interface {
	// Get returns the cached value, or "" when the key is absent
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes a key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
