package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisBackend struct {
	Client    *redis.Client
	Namespace string
	// TTL is applied on every write. Zero keeps values until overwritten.
	TTL        time.Duration
	MaxRetries int
}

func NewRedisBackend(client *redis.Client, namespace string) *RedisBackend {
	return &RedisBackend{Client: client, Namespace: namespace, MaxRetries: defaultUpdateRetries}
}

// NewScopedRedisBackend returns a backend whose values expire after ttl. It
// backs the short-lived storage scope used for non-remembered admin sessions.
func NewScopedRedisBackend(client *redis.Client, namespace string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{Client: client, Namespace: namespace, TTL: ttl, MaxRetries: defaultUpdateRetries}
}

func (b *RedisBackend) key(k string) string {
	if b.Namespace == "" {
		return k
	}
	return b.Namespace + ":" + k
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := b.Client.Get(ctx, b.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	return b.Client.Set(ctx, b.key(key), value, b.TTL).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.Client.Del(ctx, b.key(key)).Err()
}

func (b *RedisBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	fullKey := b.key(key)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, fullKey).Result()
		found := true
		if errors.Is(err, redis.Nil) {
			found = false
		} else if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fullKey, next, b.TTL)
			return nil
		})
		return err
	}

	return retryUpdate(ctx, b.MaxRetries, func() error {
		err := b.Client.Watch(ctx, txf, fullKey)
		switch {
		case errors.Is(err, ErrNoChange):
			return nil
		case errors.Is(err, redis.TxFailedErr):
			return errRaceLost
		}
		return err
	})
}

var _ Backend = (*RedisBackend)(nil)
