package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(path, []byte(`{
		port: 9000,
		cache: {profile: "5m"},
		http: {requests_per_second: 0.5},
	}`), 0644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)

	opts := cfg.ClientOptions()
	require.Equal(t, 5*time.Minute, opts.ProfileWindow)
	require.Equal(t, 20*time.Minute, opts.SearchWindow)
	require.Equal(t, 0.5, cfg.FetchOptions().RequestsPerSecond)
	require.Equal(t, 2, cfg.FetchOptions().Burst)

	t.Setenv("PORT", "7000")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Port)

	t.Setenv("PORT", "seventy")
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestMaxCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Max = true
	opts := cfg.ClientOptions()
	require.Zero(t, opts.ProfileWindow)
	require.Zero(t, opts.OverbuffWindow)
	require.Zero(t, opts.SearchWindow)
}
