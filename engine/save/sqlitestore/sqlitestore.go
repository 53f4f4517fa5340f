// Package sqlitestore keeps storage container contents in a SQLite
// database file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nathoo/turncore/engine/save"
	"github.com/nathoo/turncore/types"
)

const schema = `CREATE TABLE IF NOT EXISTS containers (
	file       INTEGER PRIMARY KEY,
	items_json TEXT    NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store provides SQLite-backed container persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a container store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the saved contents of container file.
func (s *Store) Load(ctx context.Context, file int) ([]types.Item, bool, error) {
	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT items_json FROM containers WHERE file = ?`, file,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get container %d: %w", file, err)
	}
	items, err := save.DecodeItems([]byte(payload))
	if err != nil {
		return nil, false, fmt.Errorf("decode container %d: %w", file, err)
	}
	return items, true, nil
}

// Save replaces the contents of container file.
func (s *Store) Save(ctx context.Context, file int, items []types.Item) error {
	data, err := save.EncodeItems(items)
	if err != nil {
		return fmt.Errorf("encode container %d: %w", file, err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO containers (file, items_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(file) DO UPDATE SET items_json = excluded.items_json, updated_at = excluded.updated_at`,
		file, string(data), s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put container %d: %w", file, err)
	}
	return nil
}
