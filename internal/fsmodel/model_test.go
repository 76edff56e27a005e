package fsmodel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestModel_List_HidesDotfilesUntilEnabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, ".secret"), "s")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	m := New()
	entries, err := m.List(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"..", "a.txt", "sub"}, names(entries))

	m.SetShowHidden(true)
	entries, err = m.List(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"..", ".secret", "a.txt", "sub"}, names(entries))
}

func TestModel_List_ParentLinkPointsUp(t *testing.T) {
	dir := t.TempDir()
	entries, err := New().List(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.True(t, entries[0].IsParent)
	assert.Equal(t, filepath.Dir(dir), entries[0].Path)
}

func TestModel_List_MissingDir(t *testing.T) {
	_, err := New().List(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirFilter_KeepsDirectoriesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "file.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "one"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "two"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "one"), filepath.Join(dir, "link-to-one")))

	entries, err := NewDirFilter(New()).List(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two", "link-to-one"}, names(entries))
	for _, e := range entries {
		assert.False(t, e.IsParent, "parent link must be filtered out")
	}
}

func TestSort_DirectoriesFirstThenKey(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Name: "b.txt", Size: 10, ModTime: now},
		{Name: "A.go", Size: 30, ModTime: now.Add(-time.Hour)},
		{Name: "zdir", IsDir: true},
		{Name: "..", IsDir: true, IsParent: true},
		{Name: "adir", IsDir: true},
	}

	Sort(entries, SortName, false)
	assert.Equal(t, []string{"..", "adir", "zdir", "A.go", "b.txt"}, names(entries))

	Sort(entries, SortSize, true)
	assert.Equal(t, []string{"..", "zdir", "adir", "A.go", "b.txt"}, names(entries))

	Sort(entries, SortModified, false)
	assert.Equal(t, "A.go", entries[3].Name)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortModified, ParseSortKey("modified"))
	assert.Equal(t, SortSize, ParseSortKey("Size"))
	assert.Equal(t, SortName, ParseSortKey("bogus"))
}

func TestModel_Mkdir_SuffixesOnCollision(t *testing.T) {
	dir := t.TempDir()
	m := New()

	first, err := m.Mkdir(dir, "New Folder")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "New Folder"), first)

	writeFile(t, filepath.Join(first, "keep.txt"), "keep")

	second, err := m.Mkdir(dir, "New Folder")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "New Folder (2)"), second)

	third, err := m.Mkdir(dir, "New Folder")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "New Folder (3)"), third)

	assert.FileExists(t, filepath.Join(first, "keep.txt"), "existing folder must not be overwritten")
}

func TestModel_Mkdir_InvalidName(t *testing.T) {
	_, err := New().Mkdir(t.TempDir(), "a/b")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestModel_Rename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "old.txt"), "x")
	writeFile(t, filepath.Join(dir, "taken.txt"), "y")
	m := New()

	_, err := m.Rename(filepath.Join(dir, "old.txt"), "taken.txt")
	assert.ErrorIs(t, err, os.ErrExist)

	got, err := m.Rename(filepath.Join(dir, "old.txt"), "new.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.txt"), got)
	assert.NoFileExists(t, filepath.Join(dir, "old.txt"))
}

func TestModel_Remove_SymlinkKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, filepath.Join(target, "inner.txt"), "data")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, New().Remove(link))

	_, err := os.Lstat(link)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.FileExists(t, filepath.Join(target, "inner.txt"))
}

func TestModel_Remove_DirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "d", "e", "f.txt"), "x")
	require.NoError(t, New().Remove(filepath.Join(dir, "d")))
	assert.NoDirExists(t, filepath.Join(dir, "d"))
}

func TestEntry_Type(t *testing.T) {
	cases := []struct {
		entry Entry
		want  string
	}{
		{Entry{Name: "dir", IsDir: true}, "Folder"},
		{Entry{Name: "main.go"}, "GO File"},
		{Entry{Name: ".bashrc"}, "File"},
		{Entry{Name: "Makefile"}, "File"},
		{Entry{Name: "l", IsSymlink: true}, "Link"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.entry.Type(), c.entry.Name)
	}
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.0 KiB", HumanSize(1024))
	assert.Equal(t, "1.5 MiB", HumanSize(1536*1024))
}
