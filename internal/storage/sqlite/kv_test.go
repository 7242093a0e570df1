package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *KVRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "nested", "campinnova.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewKVRepo(db)
}

func TestKVRepo_GetSet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "k", "v1"))
	got, ok, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", got)

	require.NoError(t, repo.Set(ctx, "k", "v2"))
	got, _, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, repo.Set(ctx, "empty", ""))
	got, ok, err = repo.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok, "empty value is still present")
	assert.Equal(t, "", got)
}

func TestNewDB_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "campinnova.db")

	db, err := NewDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewKVRepo(db).Set(ctx, "k", "kept"))
	require.NoError(t, db.Close())

	db, err = NewDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, ok, err := NewKVRepo(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", got)
}
