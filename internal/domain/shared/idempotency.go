package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so retried mutating requests
// (invoice generation, CSV import execution) are not applied twice.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL. It returns
	// true if the key was newly marked, false if already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
