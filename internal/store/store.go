package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5 * time.Second

// Store is the durable key/value home of model configurations. Values
// are JSON blobs keyed by (model, key); the pipeline itself only uses
// the fixed logical key "args" per model.
type Store struct {
	db *sql.DB
}

// NotFoundError indicates a requested record does not exist.
type NotFoundError struct {
	Model string
	Key   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no stored value %q for model %s", e.Key, e.Model)
}

// IsNotFound returns true when err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// Open opens (creating if needed) the sqlite-backed store at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, defaultBusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS model_args (
		model TEXT NOT NULL,
		key   TEXT NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (model, key)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Scoped returns a view of the store bound to one model's namespace.
func (s *Store) Scoped(model string) *Scoped {
	return &Scoped{store: s, model: model}
}

// HasModel reports whether any value is stored for the model.
func (s *Store) HasModel(ctx context.Context, model string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM model_args WHERE model = ?", model).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Scoped is a per-model view exposing the two operations the pipeline
// needs: get and set of a JSON blob by logical key.
type Scoped struct {
	store *Store
	model string
}

// JSONSet stores v as a JSON blob under key, replacing any previous
// value.
func (s *Scoped) JSONSet(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	_, err = s.store.db.ExecContext(ctx,
		"INSERT INTO model_args (model, key, value) VALUES (?, ?, ?) ON CONFLICT(model, key) DO UPDATE SET value = excluded.value",
		s.model, key, blob)
	return err
}

// JSONGet decodes the blob stored under key into out. A missing key is
// a NotFoundError.
func (s *Scoped) JSONGet(ctx context.Context, key string, out any) error {
	var blob []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM model_args WHERE model = ? AND key = ?",
		s.model, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundError{Model: s.model, Key: key}
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, out)
}
