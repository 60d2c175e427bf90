package cache

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
)

// Item represents a cache item with its value and metadata
type Item[T any] struct {
	Value      T
	Expiration *time.Time
}

// Cache interface defines the standard operations for a cache implementation
type Cache[T any] interface {
	// Set stores a value in the cache with an optional TTL
	// If ttl is 0, the item never expires
	Set(ctx context.Context, key string, value T, ttl time.Duration) error

	// Get retrieves a value from the cache
	// Returns ErrKeyNotFound if the key doesn't exist
	Get(ctx context.Context, key string) (T, error)

	// Delete removes the given keys, missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}

// Common cache errors
var (
	ErrKeyNotFound = errors.New("key not found in cache")
	ErrInvalidKey  = errors.New("invalid key")
)

// GetOrLoad reads key from c and falls back to load on a miss, storing the
// loaded value. Cache failures never fail the read; they are logged and the
// loader result is returned.
func GetOrLoad[T any](ctx context.Context, c Cache[T], key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	value, err := c.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		utils.Logger.Warn("Cache read failed", utils.Logger.String("key", key), utils.Logger.Err(err))
	}

	value, err = load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		utils.Logger.Warn("Cache write failed", utils.Logger.String("key", key), utils.Logger.Err(err))
	}
	return value, nil
}

// Invalidate deletes keys and logs instead of failing the caller
func Invalidate[T any](ctx context.Context, c Cache[T], keys ...string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		utils.Logger.Warn("Cache invalidation failed", utils.Logger.Err(err))
	}
}
