package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bitlab.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	assert.NotNil(t, s.DB())
	assert.NotNil(t, s.KV())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if !assert.NoError(t, err, "PRAGMA %s", tt.pragma) {
			continue
		}
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitlab.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.KV().Set(ctx, KeyCompletedModules, `["binary"]`))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.KV().Get(ctx, KeyCompletedModules)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["binary"]`, v)
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "lab.db")
	t.Setenv("BITLAB_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("BITLAB_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "bitlab", "bitlab.db"), got)
}

func TestMigrateCreatesKVTable(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query("PRAGMA table_info(" + kvTable + ")")
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	pk := ""
	for rows.Next() {
		var (
			cid, notNull, isPK int
			name, typ          string
			dflt               any
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &isPK))
		cols = append(cols, name)
		if isPK == 1 {
			pk = name
		}
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{kvKeyColumn, kvValueColumn, kvUpdatedColumn}, cols)
	assert.Equal(t, kvKeyColumn, pk)
}

func TestPersistsUpsertAndDeleteAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitlab.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.KV().Set(ctx, KeyCompletedModules, `["binary"]`))
	require.NoError(t, s1.KV().Set(ctx, KeyCompletedModules, `["binary","hex"]`))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	v, ok, err := s2.KV().Get(ctx, KeyCompletedModules)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["binary","hex"]`, v)
	require.NoError(t, s2.KV().Delete(ctx, KeyCompletedModules))
	require.NoError(t, s2.Close())

	s3, err := Open(path)
	require.NoError(t, err)
	defer s3.Close()
	v, ok, err = s3.KV().Get(ctx, KeyCompletedModules)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}
