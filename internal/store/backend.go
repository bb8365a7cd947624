package store

import (
	"context"
	"errors"
)

var (
	// ErrNoChange tells Backend.Update to leave the stored value untouched.
	ErrNoChange = errors.New("store: no change")
	// ErrConflict is returned when a read-modify-write keeps losing races.
	ErrConflict = errors.New("store: concurrent update retries exhausted")
)

// UpdateFunc receives the raw stored value (found is false when the key is
// absent) and returns the value to store in its place.
type UpdateFunc func(current string, found bool) (string, error)

// Backend is a flat string keyspace. Every write replaces the whole value
// stored under a key; there is no cross-key atomicity.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
