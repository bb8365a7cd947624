package store

import (
	"context"
	"fmt"
)

// Collection is a typed view over one storage key. Reads never fail on bad
// data: missing, null and unparsable values all come back as the fallback.
type Collection[T any] struct {
	key       string
	accessor  *Accessor
	fallback  func() T
	decode    decoder[T]
	normalize func(T) T
}

// NewDocument binds a single JSON object to key.
func NewDocument[T any](a *Accessor, key string, fallback func() T, normalize func(T) T) *Collection[T] {
	return &Collection[T]{
		key:       key,
		accessor:  a,
		fallback:  fallback,
		decode:    decodeOrWarn[T],
		normalize: normalize,
	}
}

// NewList binds a JSON array to key. Elements that fail to decode are dropped
// one by one; normalize runs on every surviving element with its index.
func NewList[E any](a *Accessor, key string, normalize func(int, E) E) *Collection[[]E] {
	var listNormalize func([]E) []E
	if normalize != nil {
		listNormalize = func(items []E) []E {
			for i := range items {
				items[i] = normalize(i, items[i])
			}
			return items
		}
	}
	return &Collection[[]E]{
		key:       key,
		accessor:  a,
		fallback:  func() []E { return []E{} },
		decode:    decodeListOrWarn[E],
		normalize: listNormalize,
	}
}

// filteredBy replaces the list-level normalization, for lists that drop
// elements after decoding.
func (c *Collection[T]) filteredBy(normalize func(T) T) *Collection[T] {
	c.normalize = normalize
	return c
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) apply(v T) T {
	if c.normalize == nil {
		return v
	}
	return c.normalize(v)
}

func (c *Collection[T]) Get(ctx context.Context) (T, error) {
	value, _, err := readWith(ctx, c.accessor, c.key, c.decode, c.fallback())
	if err != nil {
		return c.fallback(), err
	}
	return c.apply(value), nil
}

// Exists reports whether the key holds a usable value. Seeding only fills
// keys for which this is false.
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	_, found, err := readWith(ctx, c.accessor, c.key, c.decode, c.fallback())
	return found, err
}

func (c *Collection[T]) Put(ctx context.Context, v T) error {
	return c.accessor.Write(ctx, c.key, c.apply(v))
}

// Update hands fn the normalized current value and stores what it returns.
// Returning ErrNoChange leaves storage untouched.
func (c *Collection[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	result, err := updateWith(ctx, c.accessor, c.key, c.decode, c.fallback(), func(current T) (T, error) {
		next, err := fn(c.apply(current))
		if err != nil {
			return next, err
		}
		return c.apply(next), nil
	})
	if err != nil {
		return result, err
	}
	return c.apply(result), nil
}

// SeedIfAbsent writes v only when the key holds nothing usable and reports
// whether it did.
func (c *Collection[T]) SeedIfAbsent(ctx context.Context, v T) (bool, error) {
	seeded := false
	err := c.accessor.backend.Update(ctx, c.key, func(raw string, found bool) (string, error) {
		seeded = false
		if found {
			if _, ok := c.decode(c.key, raw); ok {
				return "", ErrNoChange
			}
		}
		seeded = true
		return marshalString(c.key, c.apply(v))
	})
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", c.key, err)
	}
	return seeded, nil
}
