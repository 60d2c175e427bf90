package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redis://[:password@]host:port[/db]
func NewRedisClient(ctx context.Context, connectionString string) (*redis.Client, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return nil, err
	}

	password, _ := u.User.Password()
	db := 0
	if path := strings.TrimPrefix(u.Path, "/"); path != "" {
		db, err = strconv.Atoi(path)
		if err != nil {
			return nil, err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     u.Host,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// RedisCache implements Cache interface using Redis as backend. Values are
// stored as JSON under prefix+key.
type RedisCache[T any] struct {
	client *redis.Client
	prefix string
}

func NewRedisCache[T any](client *redis.Client, prefix string) *RedisCache[T] {
	return &RedisCache[T]{client: client, prefix: prefix}
}

func (c *RedisCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *RedisCache[T]) Get(ctx context.Context, key string) (T, error) {
	var value T
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return value, ErrKeyNotFound
		}
		return value, err
	}

	err = json.Unmarshal(data, &value)
	return value, err
}

func (c *RedisCache[T]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.prefix + key
	}
	return c.client.Del(ctx, prefixed...).Err()
}
