// Package storage is the persistence layer: a small key-value store backed
// by SQLite, plus the typed Gateway the tracker and CLI read and write
// through. No in-memory state is treated as durable.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// Store is the key-value persistence interface. Values are opaque JSON
// blobs; each logical update touches exactly one key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	BytesInUse(ctx context.Context) (int64, error)
	Close() error
}

// SQLiteStore implements Store backed by a single kv table.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getValue *sql.Stmt
	setValue *sql.Stmt
	delValue *sql.Stmt
}

// Open opens (creating if needed) the SQLite database at path, runs
// migrations, and returns a ready store.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore runs migrations on an already-opened database and prepares
// statements. Closing the store also closes the database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	runner := NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.setValue, err = s.db.Prepare(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.delValue, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.getValue.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set writes value under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.setValue.ExecContext(ctx, key, value, now); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys. Missing keys are not an error.
func (s *SQLiteStore) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.delValue.ExecContext(ctx, key); err != nil {
			return fmt.Errorf("remove %q: %w", key, err)
		}
	}
	return nil
}

// Keys returns every stored key in lexical order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice rather than nil
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// BytesInUse returns the total size of all stored values in bytes.
func (s *SQLiteStore) BytesInUse(ctx context.Context) (int64, error) {
	var n sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(LENGTH(value) + LENGTH(key)) FROM kv`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("bytes in use: %w", err)
	}
	return n.Int64, nil
}

// Close releases prepared statements and the underlying database.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.getValue, s.setValue, s.delValue}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}
