package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, PolicyFail, cfg.Store.CorruptPolicy)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 10, cfg.RateLimit.UnlockRequests)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("STORE_BACKEND", BackendBadger)
	t.Setenv("DATA_DIR", "/tmp/reviewroom")
	t.Setenv("STORE_CORRUPT_POLICY", PolicyReset)
	t.Setenv("SEARCH_TIMEOUT", "2s")
	t.Setenv("TMDB_API_KEY", "tmdb-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, BackendBadger, cfg.Store.Backend)
	assert.Equal(t, "/tmp/reviewroom", cfg.Store.DataDir)
	assert.Equal(t, PolicyReset, cfg.Store.CorruptPolicy)
	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.Equal(t, "tmdb-key", cfg.Search.TMDBKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown backend",
			env:  map[string]string{"STORE_BACKEND": "redis"},
		},
		{
			name: "postgres without uri",
			env:  map[string]string{"STORE_BACKEND": BackendPostgres},
		},
		{
			name: "unknown corrupt policy",
			env:  map[string]string{"STORE_CORRUPT_POLICY": "ignore"},
		},
		{
			name: "zero search timeout",
			env:  map[string]string{"SEARCH_TIMEOUT": "0s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
