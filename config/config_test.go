package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 120.0, c.BPM)
	assert.Equal(t, 99, c.FailLimit)
	assert.Equal(t, 999, c.LoopLimit)
	assert.Equal(t, 9, c.MarkovLimit)
	assert.Equal(t, 960, c.MIDI.TicksPerBeat)
	assert.Equal(t, uint8(127), c.MIDI.Velocity)
	f := c.Factory()
	assert.Equal(t, 999, f.LoopLimit)
	assert.Equal(t, 120.0, c.Context().Tempo())
}

func userConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)
	configDir, err := os.UserConfigDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(configDir, config.Dir), 0755))
	return filepath.Join(configDir, config.Dir)
}

func TestUserOverride(t *testing.T) {
	dir := userConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("seed: 7\nbpm: 90\n"), 0644))
	c := config.Load()
	require.NoError(t, c.YmlError)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, 90.0, c.BPM)
	assert.Equal(t, 999, c.LoopLimit, "keys missing from the user config keep their defaults")
}

func TestBadUserConfig(t *testing.T) {
	dir := userConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("tempo: 90\n"), 0644))
	c := config.Load()
	assert.Error(t, c.YmlError)
	assert.Equal(t, 120.0, c.BPM)
}

func TestDatabasePath(t *testing.T) {
	c := config.Default()
	c.Database = filepath.Join(t.TempDir(), "x.db")
	p, err := c.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, c.Database, p)
}
