// Package cache stores enumeration results keyed by a hash of the instance
// and the run parameters.
//
// Enumeration is deterministic, so a result computed once for a given
// (instance, maxResults, onlyMinimal, threshold) tuple can be served again
// without re-running the search. Three backends are provided:
//
//   - [FileCache]: JSON entries under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: caching disabled
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ResultKey(problemHash, cache.ResultKeyOpts{MaxResults: 10})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // decode data
//	}
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	// TTLResult is how long an enumeration result is kept.
	TTLResult = 7 * 24 * time.Hour

	// TTLOptimum is how long an exact optimum is kept. Optima never change.
	TTLOptimum = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
