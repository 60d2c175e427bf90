package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[string]()

	require.NoError(t, c.Set(ctx, "a", "1", 0))

	v, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.ErrorIs(t, c.Set(ctx, "", "x", 0), ErrInvalidKey)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache[int]()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "forever", 2, 0))

	now = now.Add(59 * time.Second)
	_, err := c.Get(ctx, "short")
	assert.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, 1, c.Len())

	v, err := c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[int]()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Set(ctx, "c", 3, 0))

	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))
	assert.Equal(t, 1, c.Len())
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[[]string]()
	loads := 0
	load := func(context.Context) ([]string, error) {
		loads++
		return []string{"x"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad[[]string](ctx, c, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, v)
	}
	assert.Equal(t, 1, loads)

	Invalidate[[]string](ctx, c, "k")
	_, err := GetOrLoad[[]string](ctx, c, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestGetOrLoadErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[int]()
	boom := errors.New("boom")

	_, err := GetOrLoad[int](ctx, c, "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestGetOrLoadWithoutCache(t *testing.T) {
	v, err := GetOrLoad[int](context.Background(), nil, "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
