package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-tree/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesSetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 3\nfps = 12.0\n"), 0o644))

	*configPath = path
	t.Cleanup(func() { *configPath = "" })
	require.NoError(t, flag.Set("formed", "true"))
	t.Cleanup(func() { _ = flag.Set("formed", "false") })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.Seed, "unset flag keeps the file value")
	assert.Equal(t, 12.0, cfg.FPS)
	assert.True(t, cfg.Formed)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default().Foliage, cfg.Foliage)
}

func TestSetupLogWritesFile(t *testing.T) {
	prev := log.Writer()
	t.Cleanup(func() { log.SetOutput(prev) })

	path := filepath.Join(t.TempDir(), "tree.log")
	closeLog, err := setupLog(path)
	require.NoError(t, err)
	log.Printf("[Test] hello")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Test] hello")

	_, err = setupLog(filepath.Join(t.TempDir(), "missing", "dir", "tree.log"))
	assert.Error(t, err)
}
