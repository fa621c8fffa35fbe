package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bigboy/appconfig/internal/storagekeys"
)

// SQLiteStorage persists values in a single key/value table of a SQLite file.
type SQLiteStorage struct {
	keys storagekeys.Set
	conn *sql.DB
	now  func() time.Time
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string, set storagekeys.Set) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &SQLiteStorage{
		keys: set,
		conn: conn,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	if err := s.initialize(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	const query = `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := s.conn.Exec(query); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLiteStorage) Get(ctx context.Context, key storagekeys.Key) (string, error) {
	if err := checkKey(s.keys, key); err != nil {
		return "", err
	}

	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("query %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStorage) Set(ctx context.Context, key storagekeys.Key, value string) error {
	if err := checkKey(s.keys, key); err != nil {
		return err
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(key), value, s.now(),
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting an absent value is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, key storagekeys.Key) error {
	if err := checkKey(s.keys, key); err != nil {
		return err
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every stored value.
func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("clear kv: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	return s.conn.Close()
}
