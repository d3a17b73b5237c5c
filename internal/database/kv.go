package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Revision is one historical write of a key.
type Revision struct {
	WrittenAt time.Time
	Key       string
	Operation string
	Value     []byte
	ID        int64
}

// GetValue returns the stored value of key. found is false when the key does
// not exist.
func (db *DB) GetValue(ctx context.Context, key string) (value []byte, found bool, err error) {
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying key %s: %w", key, err)
	}
	return value, true, nil
}

// PutValue upserts key and appends the write to its history.
func (db *DB) PutValue(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC()
	return db.InTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now); err != nil {
			return fmt.Errorf("writing key %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv_history (key, value, operation, written_at) VALUES (?, ?, 'put', ?)`,
			key, value, now); err != nil {
			return fmt.Errorf("recording history of %s: %w", key, err)
		}
		return nil
	})
}

// DeleteValue removes key. Deleting a missing key is not an error.
func (db *DB) DeleteValue(ctx context.Context, key string) error {
	return db.InTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("deleting key %s: %w", key, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO kv_history (key, operation, written_at) VALUES (?, 'delete', ?)`,
			key, time.Now().UTC())
		return err
	})
}

// ListKeys returns the keys starting with prefix in lexical order.
func (db *DB) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// History returns the recorded writes of key, oldest first.
func (db *DB) History(ctx context.Context, key string) ([]Revision, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, key, value, operation, written_at FROM kv_history WHERE key = ? ORDER BY id`, key)
	if err != nil {
		return nil, fmt.Errorf("querying history of %s: %w", key, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Key, &r.Value, &r.Operation, &r.WrittenAt); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
