// Package cache stores rendered artifacts between runs.
//
// A [Cache] is a plain byte store keyed by string with optional expiry.
// Three implementations are provided:
//
//   - [FileCache]: JSON entries on local disk, the default for the CLI
//   - [RedisCache]: a shared Redis instance, selected with cache.redis_addr
//   - [NullCache]: stores nothing, used with --no-cache
//
// Keys are built by a [Keyer] so that every backend uses the same layout:
//
//	key := cache.NewDefaultKeyer().RenderKey("svg", []byte(dot))
//	data, ok, err := c.Get(ctx, key)
//
// Backends that talk to a network wrap transient failures with [Retryable];
// callers can pass the operation to [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// failed, not that the key is absent. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
