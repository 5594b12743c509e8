package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewroom/internal/infrastructure/storage"
)

func TestStore_ReadMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read(context.Background(), "users")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestStore_MutateWritesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	err = s.Mutate(ctx, "users", func(current []byte, exists bool) ([]byte, error) {
		assert.False(t, exists)
		assert.Nil(t, current)
		return []byte(`{"alice":{"password":"pw"}}`), nil
	})
	require.NoError(t, err)

	onDisk, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"alice":{"password":"pw"}}`, string(onDisk))

	err = s.Mutate(ctx, "users", func(current []byte, exists bool) ([]byte, error) {
		assert.True(t, exists)
		assert.Equal(t, onDisk, current)
		return []byte(`{}`), nil
	})
	require.NoError(t, err)

	data, err := s.Read(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestStore_MutateErrorKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Mutate(ctx, "rooms", func([]byte, bool) ([]byte, error) {
		return []byte(`{"a":1}`), nil
	}))

	boom := errors.New("boom")
	err = s.Mutate(ctx, "rooms", func([]byte, bool) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := s.Read(ctx, "rooms")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// no temp files left behind
	tmps, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmps)
}

func TestStore_SeparateInstancesShareDirectory(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir)
	require.NoError(t, err)
	b, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.Mutate(ctx, "sessions", func([]byte, bool) ([]byte, error) {
		return []byte(`{"x":1}`), nil
	}))

	data, err := b.Read(ctx, "sessions")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))
	assert.Equal(t, "file", b.Kind())
	assert.Equal(t, dir, b.Dir())
}
