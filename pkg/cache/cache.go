// Package cache provides the optional cross-run store for package release
// histories.
//
// Within a run pypin memoizes results in memory (see the resolve package).
// A [Cache] additionally lets repeated runs skip the index entirely for
// packages fetched recently. Three backends implement it:
//
//   - [NullCache]: stores nothing; the default.
//   - [FileCache]: one JSON file per key under ~/.cache/pypin.
//   - [RedisCache]: a shared redis instance, for `pypin serve` deployments.
//
// Values are opaque bytes with a per-entry TTL. Keys should be namespaced
// (see [Key]) so different data kinds never collide.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values with an expiry.
type Cache interface {
	// Get returns the value for key. hit is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
