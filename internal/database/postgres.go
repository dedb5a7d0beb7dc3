package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS movies (
		id          TEXT             PRIMARY KEY,
		name        TEXT             NOT NULL,
		director    TEXT             NOT NULL,
		genres      TEXT             NOT NULL DEFAULT '',
		actors      TEXT             NOT NULL DEFAULT '',
		released    TEXT             NOT NULL DEFAULT '',
		description TEXT             NOT NULL,
		imdb_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		image_url   TEXT             NOT NULL DEFAULT '',
		user_id     TEXT             NOT NULL,
		created_at  TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS favorites_kv (
		key        TEXT        PRIMARY KEY,
		value      JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// Connect opens a PostgreSQL connection pool, verifies connectivity,
// initialises the schema, and returns the ready-to-use *sql.DB.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Connection pool defaults, normally these values could be made configurable in production.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Pinger is satisfied by *sql.DB and by the Redis-backed store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingDB checks database connectivity. Intended for health check endpoints.
func PingDB(ctx context.Context, db Pinger) error {
	if db == nil {
		return fmt.Errorf("database not configured")
	}
	return db.PingContext(ctx)
}
