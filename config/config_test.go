package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 4096, cfg.MinParallelRows)
	assert.False(t, cfg.Strict)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framecat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\nstrict: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4096, cfg.MinParallelRows, "unset keys keep their defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config:")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framecat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\n"), 0o644))
	t.Setenv("FRAMECAT_WORKERS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}
