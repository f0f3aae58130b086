package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/config"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-seed", "7", "-debug", "127.0.0.1:6060", "-mute"})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), o.seed)
	assert.Equal(t, "127.0.0.1:6060", o.debugAddr)
	assert.True(t, o.mute)

	_, err = parseFlags([]string{"-seed", "many"})
	assert.Error(t, err)
}

func TestLoadConfigDefaultsLogToFile(t *testing.T) {
	cfg, err := loadConfig(options{})
	require.NoError(t, err)
	assert.Equal(t, defaultLogFile, cfg.Log.File)
	assert.True(t, cfg.Audio.Enabled)
	assert.Empty(t, cfg.Debug.Addr)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := "[level]\nseed = 3\n\n[log]\nfile = \"game.log\"\n\n[debug]\naddr = \"127.0.0.1:1\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := loadConfig(options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.Level.Seed)
	assert.Equal(t, "game.log", cfg.Log.File)

	cfg, err = loadConfig(options{configPath: path, seed: 9, debugAddr: "127.0.0.1:2", mute: true, logFile: "other.log"})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Level.Seed)
	assert.Equal(t, "127.0.0.1:2", cfg.Debug.Addr)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, "other.log", cfg.Log.File)
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[world]\nwidth = -1\n"), 0o644))

	_, err := loadConfig(options{configPath: path})
	assert.ErrorIs(t, err, config.ErrInvalid)
}
