package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache interface with in-memory storage
type MemoryCache[T any] struct {
	items map[string]Item[T]
	mu    sync.Mutex
	now   func() time.Time
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{
		items: make(map[string]Item[T]),
		now:   time.Now,
	}
}

func (c *MemoryCache[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var exp *time.Time
	if ttl > 0 {
		expTime := c.now().Add(ttl)
		exp = &expTime
	}

	c.items[key] = Item[T]{
		Value:      value,
		Expiration: exp,
	}
	return nil
}

func (c *MemoryCache[T]) Get(_ context.Context, key string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	item, exists := c.items[key]
	if !exists {
		return zero, ErrKeyNotFound
	}

	if item.Expiration != nil && c.now().After(*item.Expiration) {
		delete(c.items, key)
		return zero, ErrKeyNotFound
	}

	return item.Value, nil
}

func (c *MemoryCache[T]) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

func (c *MemoryCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
