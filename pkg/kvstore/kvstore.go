// Package kvstore provides the abstract key-value storage boundary the
// insight core persists through. The core treats keys as opaque local
// state (feedback tallies, cooldowns, day buckets); implementations are
// expected to resolve quickly and may fail, in which case callers fall
// back to empty defaults.
package kvstore

import "context"

// Store is a minimal key-value store. Get reports presence separately
// from errors so "missing" never looks like a failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
