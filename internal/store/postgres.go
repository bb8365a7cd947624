package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresBackend struct {
	DB        *sql.DB
	Namespace string
}

func NewPostgresBackend(db *sql.DB, namespace string) *PostgresBackend {
	return &PostgresBackend{DB: db, Namespace: namespace}
}

func (b *PostgresBackend) key(k string) string {
	if b.Namespace == "" {
		return k
	}
	return b.Namespace + ":" + k
}

func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	stmt := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := b.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("ensure schema kv_store: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := b.DB.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, b.key(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *PostgresBackend) Set(ctx context.Context, key, value string) error {
	_, err := b.DB.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, b.key(key), value)
	return err
}

func (b *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := b.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, b.key(key))
	return err
}

func (b *PostgresBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	fullKey := b.key(key)

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current string
	found := true
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`, fullKey).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		found = false
	} else if err != nil {
		return err
	}

	next, err := fn(current, found)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, fullKey, next); err != nil {
		return err
	}

	return tx.Commit()
}

var _ Backend = (*PostgresBackend)(nil)
