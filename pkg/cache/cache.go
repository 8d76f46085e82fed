// Package cache stores pipeline results keyed by content hashes.
//
// Layout and routing are pure functions of a diagram and a few options, so
// their serialized results can be reused across runs. The CLI uses a
// [FileCache] under the user cache directory; the HTTP server can share a
// [RedisCache] between instances. [NullCache] disables caching.
//
// Keys come from a [Keyer], which hashes the inputs of each stage so that
// any change to the diagram or options yields a new key.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached results.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLRoutes   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
