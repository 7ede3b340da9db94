// Package cache provides the read-through cache in front of the storage
// layer. It only ever serves read paths (tournament listings and lookups);
// the registration protocol always reads the store directly.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long an entry stays fresh unless the caller says otherwise.
const DefaultTTL = 5 * time.Minute

// Loader produces the value for a key on a cache miss.
type Loader func(ctx context.Context) ([]byte, error)

// Cache defines the read-through cache contract. Individual operations are
// safe under concurrent access; there is no cross-key atomicity and none is
// needed — staleness is bounded by the TTL or ended early by invalidation.
type Cache interface {
	// GetOrLoad returns the cached value for key if present and not expired,
	// otherwise invokes loader, stores the result with a fresh expiry, and
	// returns it. A loader failure is returned without caching anything.
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error)

	// Invalidate removes one exact key.
	Invalidate(ctx context.Context, key string) error

	// InvalidatePrefix removes all keys sharing the prefix. Used to drop
	// every cached tournament-list variant in one call after a mutation.
	InvalidatePrefix(ctx context.Context, prefix string) error
}
