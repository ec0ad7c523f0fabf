// Package cache provides byte-oriented caching used to memoize solver
// results: solving the same instance with the same configuration twice
// should not pay for a second search.
//
// Three implementations are provided: [FileCache] for local CLI usage,
// [RedisCache] for the HTTP server, and [NullCache] to disable caching.
// Keys are derived from content hashes via a [Keyer], so equal inputs
// share entries regardless of where they came from.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys from content hashes.
type Keyer interface {
	// SolutionKey identifies a solver result by the instance contents
	// and the configuration that produced it.
	SolutionKey(instanceHash, configHash string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SolutionKey implements [Keyer].
func (DefaultKeyer) SolutionKey(instanceHash, configHash string) string {
	return hashKey("solution", instanceHash, configHash)
}

// NullCache is a no-op cache that never stores anything. Useful for
// tests or when caching is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
