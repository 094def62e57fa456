package localstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteRepository persists values in a single-table SQLite file, the closest
// stand-in for a browser's local storage when running outside one.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating when needed) the store at path
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, dnderr.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dnderr.StorageUnavailable(err, "open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, dnderr.StorageUnavailable(err, "ping sqlite db")
	}
	if _, err := db.Exec(createKVTable); err != nil {
		_ = db.Close()
		return nil, dnderr.StorageUnavailable(err, "create kv table")
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the SQLite handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get returns the value stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", dnderr.InvalidArgument("key is required")
	}

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", dnderr.NotFoundf("no value stored under '%s'", key).
				WithMeta("key", key)
		}
		return "", dnderr.StorageUnavailable(err, "failed to read party state from sqlite")
	}

	return value, nil
}

// Set stores value under key
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return dnderr.InvalidArgument("key is required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, r.now().UTC().UnixMilli(),
	)
	if err != nil {
		return dnderr.StorageUnavailable(err, "failed to write party state to sqlite")
	}

	return nil
}
