// Package cache stores computed routes so that repeated requests for the
// same start, stops and language skip the search.
//
// Three backends share the Cache interface:
//   - Null: never stores anything (caching disabled).
//   - Memory: an in-process map with per-entry expiry.
//   - Redis: a shared cache for several server instances, built on
//     github.com/redis/go-redis/v9.
//
// Keys are derived with Key, which hashes arbitrary JSON-encodable parts
// with SHA-256 under a readable prefix.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value of key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds a cache key "prefix:sha256(json(parts))".
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Null is a cache that never stores anything.
type Null struct{}

// NewNull creates a null cache.
func NewNull() Cache { return Null{} }

// Get always misses.
func (Null) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (Null) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (Null) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (Null) Close() error { return nil }

var _ Cache = Null{}
