package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresKV implements KeyValueStore on the favorites_kv table.
type PostgresKV struct {
	db *sql.DB
}

// NewPostgresKV creates a PostgresKV backed by the given *sql.DB.
func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

func (s *PostgresKV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM favorites_kv WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresKV) Write(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO favorites_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM favorites_kv WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}
