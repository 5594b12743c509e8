package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewroom/internal/app/server/config"
	"reviewroom/internal/infrastructure/storage"
	"reviewroom/internal/utils/logger"
)

func fileConfig(dir, policy string) *config.Config {
	return &config.Config{
		Store: config.Store{
			Backend:       config.BackendFile,
			DataDir:       dir,
			CorruptPolicy: policy,
		},
	}
}

func TestOpenStore_File(t *testing.T) {
	store, err := OpenStore(context.Background(), fileConfig(t.TempDir(), config.PolicyFail), logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "file", store.Kind())
}

func TestOpenStore_Badger(t *testing.T) {
	cfg := fileConfig(t.TempDir(), config.PolicyFail)
	cfg.Store.Backend = config.BackendBadger

	store, err := OpenStore(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "badger", store.Kind())
}

func TestOpenStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{oops"), 0o600))

	_, err := OpenStore(context.Background(), fileConfig(dir, config.PolicyFail), logger.Discard())
	assert.ErrorIs(t, err, storage.ErrCorruptDocument)

	store, err := OpenStore(context.Background(), fileConfig(dir, config.PolicyReset), logger.Discard())
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	cfg := fileConfig(t.TempDir(), config.PolicyFail)
	cfg.Store.Backend = "cassandra"

	_, err := OpenStore(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
