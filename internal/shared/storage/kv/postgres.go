package kv

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore is a Postgres-backed Store for server deployments. The kv_store
// table is managed by the embedded migrations in internal/shared/storage/db.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_store WHERE key = $1 LIMIT 1`
	var value string
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PGStore) Set(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, key, value)
	return err
}

func (s *PGStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_store WHERE key = $1`
	_, err := s.DB.ExecContext(ctx, query, key)
	return err
}
