// Package store persists the whole record store as a single snapshot
// blob. Three implementations share one contract: a JSON file (the
// default), a SQLite key/value table, and an in-memory store for tests.
package store

import (
	"context"
	"time"
)

// SnapshotStore is the persistence gateway contract. Save overwrites the
// entire stored blob idempotently and bumps the last-modified timestamp;
// Load returns (nil, nil) when nothing has been stored yet.
// LastModified lets the gateway detect writes from another process
// sharing the same storage.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	LastModified(ctx context.Context) (time.Time, error)
	Close() error
}
