package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aztectemple/internal/dbx"
)

const timeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (Entry, bool, error) {
	var value, updatedAt string
	err := r.db.QueryRowContext(ctx, `SELECT value, updated_at FROM metadata WHERE key = ?`, key).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}

	e, err := newEntry(key, value, updatedAt)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key, value string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, at.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to put metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete metadata%v: %w", keys, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted metadata: %w", err)
	}
	return n, nil
}

// ListPrefix returns the entries whose key starts with prefix, ordered by key.
func (r *SQLiteRepository) ListPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value, updated_at FROM metadata
		WHERE substr(key, 1, ?) = ?
		ORDER BY key
	`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var key, value, updatedAt string
		if err := rows.Scan(&key, &value, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		e, err := newEntry(key, value, updatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

func newEntry(key, value, updatedAt string) (Entry, error) {
	at, err := time.Parse(timeLayout, updatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed updated_at for metadata[%s]: %w", key, err)
	}
	return Entry{Key: key, Value: value, UpdatedAt: at}, nil
}
