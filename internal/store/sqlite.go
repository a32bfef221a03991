package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteKV is the durable backend: one table of key/payload rows in a local
// sqlite file. maxPayload
// is the storage quota in bytes; 0 means unlimited.
type SQLiteKV struct {
	db         *sql.DB
	maxPayload int
}

func NewSQLiteKV(dbPath string, maxPayload int) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteKV{db: db, maxPayload: maxPayload}, nil
}

func (k *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := k.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %q: %w", key, err)
	}
	return payload, true, nil
}

func (k *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	if k.maxPayload > 0 && len(value) > k.maxPayload {
		return fmt.Errorf("write snapshot %q (%d bytes): %w", key, len(value), ErrPayloadTooLarge)
	}
	_, err := k.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	return nil
}

func (k *SQLiteKV) Close() error {
	if k.db != nil {
		return k.db.Close()
	}
	return nil
}
