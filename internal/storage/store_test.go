package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).Run())
	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	return store
}

func TestMigrationRunner_FreshDB(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).Run())

	for _, table := range []string{"kv", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var idx string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_kv_updated_at'",
	).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run())

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_SetGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "settings", []byte(`{"a":1}`)))

	got, err := store.Get(ctx, "settings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("old")))
	require.NoError(t, store.Set(ctx, "k", []byte("new")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Remove(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Set(ctx, "c", []byte("3")))

	require.NoError(t, store.Remove(ctx, "a", "c"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "b")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_RemoveMissingIsNoop(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Remove(context.Background(), "ghost"))
}

func TestSQLiteStore_KeysSorted(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "entries:2026-08-30", []byte("[]")))
	require.NoError(t, store.Set(ctx, "aggregates:2026-08-30", []byte("{}")))
	require.NoError(t, store.Set(ctx, "settings", []byte("{}")))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aggregates:2026-08-30", "entries:2026-08-30", "settings"}, keys)
}

func TestSQLiteStore_BytesInUse(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("0123456789")))

	n, err := store.BytesInUse(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(10))
}

func TestOpen_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focuswatch.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemStore_MatchesStoreContract(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Set(ctx, "a", []byte("1")))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Remove(ctx, "a", "ghost"))
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := store.BytesInUse(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, int64(0))
}

func TestMemStore_CopiesValues(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	val := []byte("original")
	require.NoError(t, store.Set(ctx, "k", val))
	val[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
