package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// NullCache stands in when caching is off. Every lookup misses and every
// write is dropped, so parses always run in full. Reason records why the
// cache is off, for log messages.
type NullCache struct {
	Reason string

	dropped atomic.Int64
}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Disabled returns a [NullCache] explaining why caching is off.
func Disabled(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

// Dropped returns how many writes were discarded.
func (c *NullCache) Dropped() int64 { return c.dropped.Load() }

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

// Set drops data.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.dropped.Add(1)
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return ctx.Err()
}

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
