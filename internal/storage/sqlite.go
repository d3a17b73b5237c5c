package storage

import (
	"context"

	"github.com/Veraticus/gxpassess/internal/database"
)

// SQLiteKV is a KV over the kv table of a SQLite database. Every write is
// also recorded in the table's history.
type SQLiteKV struct {
	db *database.DB
}

// NewSQLiteKV opens (and migrates) the database at path.
func NewSQLiteKV(path string, opts ...database.Option) (*SQLiteKV, error) {
	db, err := database.New(path, opts...)
	if err != nil {
		return nil, err
	}
	return &SQLiteKV{db: db}, nil
}

// NewSQLiteKVFromDB wraps an already opened database.
func NewSQLiteKVFromDB(db *database.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get implements KV.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.db.GetValue(ctx, key)
}

// Put implements KV.
func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	return s.db.PutValue(ctx, key, value)
}

// Delete implements KV.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	return s.db.DeleteValue(ctx, key)
}

// Keys implements KV.
func (s *SQLiteKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.db.ListKeys(ctx, prefix)
}

// History returns the recorded writes of key.
func (s *SQLiteKV) History(ctx context.Context, key string) ([]database.Revision, error) {
	return s.db.History(ctx, key)
}

// Close implements KV.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
