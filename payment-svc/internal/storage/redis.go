package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountdownStore keeps one Redis key per payment window. The key's TTL is
// the time left to pay; once it expires the window is gone for good.
type CountdownStore struct {
	Client    *redis.Client
	Namespace string
}

func NewCountdownStore(client *redis.Client, namespace string) *CountdownStore {
	return &CountdownStore{Client: client, Namespace: namespace}
}

func (s *CountdownStore) CountdownKey(id string) string {
	if s.Namespace == "" {
		return "payment:countdown:" + id
	}
	return s.Namespace + ":payment:countdown:" + id
}

func (s *CountdownStore) Start(ctx context.Context, id string, window time.Duration) error {
	return s.Client.Set(ctx, s.CountdownKey(id), "open", window).Err()
}

// Remaining returns the time left on the window, or false once it has
// expired or been used.
func (s *CountdownStore) Remaining(ctx context.Context, id string) (time.Duration, bool, error) {
	ttl, err := s.Client.TTL(ctx, s.CountdownKey(id)).Result()
	if err != nil {
		return 0, false, err
	}
	if ttl <= 0 {
		return 0, false, nil
	}
	return ttl, true, nil
}

// Consume closes the window. Only the first caller gets true.
func (s *CountdownStore) Consume(ctx context.Context, id string) (bool, error) {
	removed, err := s.Client.Del(ctx, s.CountdownKey(id)).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}
