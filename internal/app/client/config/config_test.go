package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "reviews.example.com:443")
	t.Setenv("ENABLE_TLS", "true")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "reviews.example.com:443", cfg.ServerAddress)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "state.db"), cfg.StatePath)
	assert.True(t, cfg.EnableTLS)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsProd())
	assert.False(t, cfg.IsLocal())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.False(t, cfg.EnableTLS)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("REQUEST_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
}
