// Package cache provides the read cache behind the data-fetching layer. The
// cache is constructed once per application instance and injected, so tests
// can substitute a fresh instance per case.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized backend responses keyed by request path.
type Cache interface {
	// Get returns the cached value for key and whether it was present and
	// unexpired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes key.
	Delete(ctx context.Context, key string)
	// Clear removes all entries.
	Clear(ctx context.Context)
}
