// Package cache stores parse results between runs.
//
// # Overview
//
// Parsing is cheap compared to segmenting and classifying an image, but
// evaluation runs over whole datasets parse the same inputs again and
// again. The [Cache] interface hides where results live:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis server, for batch runs on several hosts
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] builds keys from a content hash of the input and the options
// that affect the output, so a changed option never returns a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ParseKey(cache.Hash(cropsJSON), cache.ParseKeyOpts{Simplify: true})
//	// parse:3f5a...
//
// [ScopedKeyer] prefixes every key, which separates entries produced with
// different symbol size tables.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Default entry lifetimes.
const (
	TTLParse     = 7 * 24 * time.Hour
	TTLRecognize = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the entry at key into v. It returns [ErrCacheMiss] when
// the key is absent or the entry no longer decodes.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
