package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDir_UsesEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(StateDirEnv, dir)

	got, err := DefaultDir("Org", "App")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestDefaultDir_ScopedByOrgAndApp(t *testing.T) {
	t.Setenv(StateDirEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got, err := DefaultDir("Dima Melkunas", "File Manager")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, filepath.Join("Dima Melkunas", "File Manager", "state")), got)
}

func TestStore_TypedValuesWithDefaults(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.True(t, s.Bool("Missing", true))
	assert.Equal(t, 7, s.Int("Missing", 7))
	assert.Equal(t, "d", s.String("Missing", "d"))
	assert.Equal(t, []int{1}, s.Ints("Missing", []int{1}))

	require.NoError(t, s.SetValue("Flag", true))
	require.NoError(t, s.SetValue("Count", 3))
	require.NoError(t, s.SetValue("Name", "left"))
	require.NoError(t, s.SetValue("Sizes", []int{1, 2, 3}))

	assert.True(t, s.Bool("Flag", false))
	assert.Equal(t, 3, s.Int("Count", 0))
	assert.Equal(t, "left", s.String("Name", ""))
	assert.Equal(t, []int{1, 2, 3}, s.Ints("Sizes", nil))
	assert.Equal(t, []string{"Count", "Flag", "Name", "Sizes"}, s.Keys())
}

func TestStore_UndecodableFallsBack(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Flag"), []byte("not json"), 0o644))

	assert.True(t, s.Contains("Flag"))
	assert.True(t, s.Bool("Flag", true))
}

func TestStore_RemoveAndClear(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.SetValue("A", 1))
	require.NoError(t, s.SetValue("B", 2))

	require.NoError(t, s.Remove("A"))
	require.NoError(t, s.Remove("A"), "removing a missing key is not an error")
	assert.False(t, s.Contains("A"))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Keys())
}

func TestWindowState_RoundTripRestoresHidden(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	w := DefaultWindowState()
	w.ShowHidden = true
	w.LeftPaneActive = false
	w.Left = PaneState{Path: "/tmp", ViewMode: ListView, Header: HeaderState{SortColumn: "Size", Descending: true}}
	w.Right.Path = "/var"
	w.SplitterSizes = []int{1, 4, 4}
	w.Geometry = Geometry{Width: 120, Height: 40}
	require.NoError(t, w.Save(s))

	got := Restore(s)
	assert.Equal(t, w, got)
}

func TestRestore_DefaultsOnEmptyStore(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	got := Restore(s)
	assert.Equal(t, DefaultWindowState(), got)
	assert.True(t, got.ShowToolBar)
	assert.False(t, got.ShowStatusBar)
	assert.True(t, got.LeftPaneActive)
}

func TestRestore_RejectsBadSplitterAndViewMode(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.SetValue(KeyMainSplitterSizes, []int{0, 5}))
	require.NoError(t, s.SetValue(KeyRightPaneViewMode, 9))

	got := Restore(s)
	assert.Equal(t, DefaultSplitterSizes, got.SplitterSizes)
	assert.Equal(t, DetailView, got.Right.ViewMode)
}
