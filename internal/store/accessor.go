package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Accessor reads and writes JSON documents on top of a Backend. Reads are
// fail-soft: a missing key or a value that does not parse yields the
// caller's fallback. Only transport failures surface as errors.
type Accessor struct {
	backend Backend
}

func NewAccessor(backend Backend) *Accessor {
	return &Accessor{backend: backend}
}

func (a *Accessor) Backend() Backend {
	return a.backend
}

func (a *Accessor) Write(ctx context.Context, key string, value any) error {
	payload, err := marshalString(key, value)
	if err != nil {
		return err
	}
	if err := a.backend.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (a *Accessor) Remove(ctx context.Context, key string) error {
	if err := a.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Read decodes the value under key, returning fallback when it is absent,
// JSON null, or unparsable. The boolean reports whether a stored value was used.
func Read[T any](ctx context.Context, a *Accessor, key string, fallback T) (T, bool, error) {
	return readWith(ctx, a, key, decodeOrWarn[T], fallback)
}

// Update runs a read-modify-write on one key. fn may return ErrNoChange to
// skip the write, in which case the current value is returned.
func Update[T any](ctx context.Context, a *Accessor, key string, fallback T, fn func(T) (T, error)) (T, error) {
	return updateWith(ctx, a, key, decodeOrWarn[T], fallback, fn)
}

type decoder[T any] func(key, raw string) (T, bool)

func readWith[T any](ctx context.Context, a *Accessor, key string, decode decoder[T], fallback T) (T, bool, error) {
	raw, found, err := a.backend.Get(ctx, key)
	if err != nil {
		return fallback, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return fallback, false, nil
	}
	value, ok := decode(key, raw)
	if !ok {
		return fallback, false, nil
	}
	return value, true, nil
}

func updateWith[T any](ctx context.Context, a *Accessor, key string, decode decoder[T], fallback T, fn func(T) (T, error)) (T, error) {
	var result T
	err := a.backend.Update(ctx, key, func(raw string, found bool) (string, error) {
		current := fallback
		if found {
			if value, ok := decode(key, raw); ok {
				current = value
			}
		}

		next, err := fn(current)
		if errors.Is(err, ErrNoChange) {
			result = current
			return "", ErrNoChange
		}
		if err != nil {
			return "", err
		}

		payload, err := marshalString(key, next)
		if err != nil {
			return "", err
		}
		result = next
		return payload, nil
	})
	if err != nil && !errors.Is(err, ErrNoChange) {
		return result, fmt.Errorf("update %s: %w", key, err)
	}
	return result, nil
}

func marshalString(key string, value any) (string, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return string(payload), nil
}

func decodeOrWarn[T any](key, raw string) (T, bool) {
	var value T
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("WARNING: ignoring unparsable value under %q: %v", key, err)
		return value, false
	}
	return value, true
}

// decodeListOrWarn decodes a JSON array element by element and drops the
// elements that do not fit E instead of discarding the whole list.
func decodeListOrWarn[E any](key, raw string) ([]E, bool) {
	elements, ok := decodeOrWarn[[]json.RawMessage](key, raw)
	if !ok {
		return nil, false
	}
	out := make([]E, 0, len(elements))
	for i, element := range elements {
		var value E
		if err := json.Unmarshal(element, &value); err != nil {
			log.Printf("WARNING: dropping malformed element %d under %q: %v", i, key, err)
			continue
		}
		out = append(out, value)
	}
	return out, true
}
