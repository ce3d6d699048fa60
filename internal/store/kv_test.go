package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "nested", "hidralife.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestGet_MissingKey(t *testing.T) {
	kv := openTemp(t)

	v, ok, err := kv.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetThenGet_Overwrites(t *testing.T) {
	kv := openTemp(t)

	require.NoError(t, kv.SetMany(map[string]string{"k": `{"a":1}`}))
	require.NoError(t, kv.SetMany(map[string]string{"k": `{"a":2}`}))

	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, v)

	_, err = kv.UpdatedAt("k")
	assert.NoError(t, err)
}

func TestSetMany_AndKeys(t *testing.T) {
	kv := openTemp(t)

	require.NoError(t, kv.SetMany(map[string]string{
		"b": "2",
		"a": "1",
		"c": "3",
	}))

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hidralife.db")

	kv, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.SetMany(map[string]string{"persist": "yes"}))
	require.NoError(t, kv.Close())

	kv, err = Open(path)
	require.NoError(t, err)
	defer kv.Close()

	v, ok, err := kv.Get("persist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "yes", v)
	assert.Equal(t, path, kv.Path())
}

func TestUpdatedAt_TracksWrites(t *testing.T) {
	kv := openTemp(t)

	before := time.Now().Add(-time.Second).Truncate(time.Second)
	require.NoError(t, kv.SetMany(map[string]string{"k": "v"}))

	at, err := kv.UpdatedAt("k")
	require.NoError(t, err)
	assert.False(t, at.Before(before), "updated_at %v before %v", at, before)

	_, err = kv.UpdatedAt("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
