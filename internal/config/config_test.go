package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Storage.Path)
	assert.Nil(t, cfg.Notify.Bell)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
path = "/tmp/study.db"

[notify]
bell = false

[log]
file = "/tmp/study.log"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Storage.Path)
	assert.Equal(t, "/tmp/study.db", *cfg.Storage.Path)
	require.NotNil(t, cfg.Notify.Bell)
	assert.False(t, *cfg.Notify.Bell)
	require.NotNil(t, cfg.Log.File)
	assert.Equal(t, "/tmp/study.log", *cfg.Log.File)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\npath ="), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvBell, "")

	cfg := Resolve(FileConfig{})
	assert.Equal(t, filepath.Join("/data", "studypick", "studypick.db"), cfg.DBPath)
	assert.True(t, cfg.Bell)
	assert.Empty(t, cfg.LogFile)
}

func TestResolveEnvOverridesFile(t *testing.T) {
	path := "/from/file.db"
	bell := true
	t.Setenv(EnvDBPath, "/from/env.db")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvBell, "false")

	cfg := Resolve(FileConfig{
		Storage: StorageConfig{Path: &path},
		Notify:  NotifyConfig{Bell: &bell},
	})
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.False(t, cfg.Bell)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, filepath.Join("/cfg", "studypick", "config.toml"), DefaultConfigPath())
}
