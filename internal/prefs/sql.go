package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/unseenbook/internal/db"
)

// SQLStore persists preferences in SQLite.
type SQLStore struct {
	db       *db.DB
	defaults Preferences
}

// NewSQLStore creates a SQLStore backed by the given database. Readers
// without stored values get defaults; the zero value means Default().
func NewSQLStore(database *db.DB, defaults Preferences) *SQLStore {
	if defaults == (Preferences{}) {
		defaults = Default()
	}
	return &SQLStore{db: database, defaults: defaults}
}

// Load returns the reader's preferences. Keys the reader never stored
// take the store's defaults.
func (s *SQLStore) Load(ctx context.Context, readerID string) (Preferences, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM reader_preferences WHERE reader_id = ?`, readerID)
	if err != nil {
		return s.defaults, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 2)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s.defaults, fmt.Errorf("scanning preference: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return s.defaults, fmt.Errorf("iterating preferences: %w", err)
	}
	return fromValues(values, s.defaults), nil
}

// Save writes both preference keys for the reader.
func (s *SQLStore) Save(ctx context.Context, readerID string, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := touchReader(ctx, tx, readerID); err != nil {
		return err
	}
	for key, value := range p.Values() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reader_preferences (reader_id, key, value)
			VALUES (?, ?, ?)
			ON CONFLICT(reader_id, key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
			readerID, key, value)
		if err != nil {
			return fmt.Errorf("saving preference %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing preferences: %w", err)
	}
	return nil
}

// Get returns the raw stored value for key.
func (s *SQLStore) Get(ctx context.Context, readerID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM reader_preferences WHERE reader_id = ? AND key = ?`, readerID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %s: %w", key, err)
	}
	return value, true, nil
}

// Touch records that the reader was seen, creating the reader if needed.
func (s *SQLStore) Touch(ctx context.Context, readerID string) error {
	return touchReader(ctx, s.db, readerID)
}

// Forget deletes the reader and their preferences.
func (s *SQLStore) Forget(ctx context.Context, readerID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM readers WHERE id = ?`, readerID); err != nil {
		return fmt.Errorf("deleting reader: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func touchReader(ctx context.Context, ex execer, readerID string) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO readers (id) VALUES (?)
		ON CONFLICT(id) DO UPDATE SET last_seen = datetime('now')`, readerID)
	if err != nil {
		return fmt.Errorf("recording reader: %w", err)
	}
	return nil
}
