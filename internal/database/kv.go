package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	createCollectionsSQL = `
		CREATE TABLE IF NOT EXISTS collections (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	selectCollectionSQL = `SELECT value FROM collections WHERE key = $1`

	upsertCollectionSQL = `
		INSERT INTO collections (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// EnsureSchema creates the collections table if it is missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, createCollectionsSQL); err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}
	return nil
}

// Load returns the stored value for key, or nil bytes when the key has never
// been written.
func (db *DB) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.pool.QueryRow(ctx, selectCollectionSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	return value, nil
}

// Save overwrites the full value for key. The previous value is gone: the medium
// stores whole collections, never deltas.
func (db *DB) Save(ctx context.Context, key string, value []byte) error {
	if _, err := db.pool.Exec(ctx, upsertCollectionSQL, key, value); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}
