package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/database"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKVWithLogger(filepath.Join(t.TempDir(), "data"), logger.NewMockLogger())
	require.NoError(t, err)

	db, err := database.NewMemoryDB(filepath.Base(t.Name()))
	require.NoError(t, err)

	out := map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"sqlite": NewSQLiteKVFromDB(db),
	}
	t.Cleanup(func() {
		for _, kv := range out {
			_ = kv.Close()
		}
	})
	return out
}

func TestKV_Contract(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := kv.Get(ctx, KeyCompany)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Put(ctx, KeyCompany, []byte(`{"name":"Acme"}`)))
			require.NoError(t, kv.Put(ctx, KeyCompany, []byte(`{"name":"Beta"}`)))
			got, found, err := kv.Get(ctx, KeyCompany)
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `{"name":"Beta"}`, string(got), "last write wins")

			require.NoError(t, kv.Put(ctx, ResultsKey("b"), []byte(`{}`)))
			require.NoError(t, kv.Put(ctx, ResultsKey("a"), []byte(`{}`)))
			require.NoError(t, kv.Put(ctx, KeyLatestResults, []byte(`{}`)))

			keys, err := kv.Keys(ctx, ResultsPrefix())
			require.NoError(t, err)
			assert.Equal(t, []string{ResultsKey("a"), ResultsKey("b")}, keys)

			require.NoError(t, kv.Delete(ctx, KeyCompany))
			require.NoError(t, kv.Delete(ctx, KeyCompany), "deleting a missing key succeeds")
			_, found, err = kv.Get(ctx, KeyCompany)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	value := []byte(`{"a":1}`)
	require.NoError(t, kv.Put(ctx, "k", value))
	value[2] = 'X'

	got, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestFileKV_RejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKVWithLogger(t.TempDir(), logger.NewMockLogger())
	require.NoError(t, err)

	for _, key := range []string{"../escape", "a/b", ""} {
		assert.Error(t, kv.Put(ctx, key, []byte(`{}`)), key)
		_, _, err := kv.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestFileKV_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := NewFileKVWithLogger(dir, logger.NewMockLogger())
	require.NoError(t, err)

	require.NoError(t, kv.Put(ctx, SystemsKey("1234"), []byte(`[]`)))

	matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.FileExists(t, filepath.Join(dir, "systemsInventory__1234.json"))
}

func TestSQLiteKV_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "gxp.db"))
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	require.NoError(t, kv.Put(ctx, KeyDraft, []byte(`{"current_area":1}`)))
	require.NoError(t, kv.Delete(ctx, KeyDraft))

	history, err := kv.History(ctx, KeyDraft)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "put", history[0].Operation)
	assert.Equal(t, "delete", history[1].Operation)
}

func TestOpen(t *testing.T) {
	log := logger.NewMockLogger()

	kv, err := Open(BackendMemory, "", log)
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = Open(BackendFile, t.TempDir(), log)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open(BackendSQLite, filepath.Join(t.TempDir(), "x.db"), log)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open("redis", "", log)
	assert.Error(t, err)
}
