// Package cache provides pluggable byte caching for rendered posters.
//
// The HTTP API caches encoded render output keyed by a hash of the poster
// description, so identical requests skip the compositing pass entirely.
// Three backends are provided:
//
//   - FileCache: entries on local disk, suited to a single-node server
//   - RedisCache: shared entries for multi-node deployments
//   - NullCache: caching disabled
//
// All backends implement the Cache interface and are safe for concurrent
// use by multiple goroutines.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves opaque byte values with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKey derives the cache key for a render request from the raw
// poster description and the requested output format.
func RenderKey(config []byte, format string) string {
	return hashKey("render", Hash(config), format)
}
