package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Chdir(home)
	return home
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want, cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", AppDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
new_folder_name: Untitled
confirm_delete: false
log:
  level: debug
  file: ~/logs/fm.log
start:
  left: ~/src
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", cfg.NewFolderName)
	assert.False(t, cfg.ConfirmDelete)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, "logs", "fm.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(home, "src"), cfg.Start.Left)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FILEMANAGER_CONFIRM_DELETE", "false")
	t.Setenv("FILEMANAGER_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.ConfirmDelete)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BlankFolderNameFallsBack(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "fm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("new_folder_name: \"  \"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultNewFolderName, cfg.NewFolderName)
}
