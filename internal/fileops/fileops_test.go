package fileops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filemanager/internal/clipboard"
	"filemanager/internal/fsmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o644))
	require.NoError(t, os.Chmod(path, mode))
}

func TestPaste_CutMovesEntries(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "src", "a.txt")
	b := filepath.Join(root, "src", "b.txt")
	touch(t, a, 0o644)
	touch(t, b, 0o644)
	dest := filepath.Join(root, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	done, err := Paste(context.Background(), fsmodel.New(), clipboard.Payload{Paths: []string{a, b}, Mode: fsmodel.Move}, dest)
	require.NoError(t, err)
	assert.Len(t, done, 2)
	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)
	assert.FileExists(t, filepath.Join(dest, "a.txt"))
	assert.FileExists(t, filepath.Join(dest, "b.txt"))
}

func TestPaste_CopyKeepsOriginals(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "src", "a.txt")
	touch(t, a, 0o644)
	dest := filepath.Join(root, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	_, err := Paste(context.Background(), fsmodel.New(), clipboard.Payload{Paths: []string{a}, Mode: fsmodel.Copy}, dest)
	require.NoError(t, err)
	assert.FileExists(t, a)
	assert.FileExists(t, filepath.Join(dest, "a.txt"))
}

func TestPaste_AggregatesFailures(t *testing.T) {
	root := t.TempDir()
	ok := filepath.Join(root, "src", "ok.txt")
	clash := filepath.Join(root, "src", "clash.txt")
	touch(t, ok, 0o644)
	touch(t, clash, 0o644)
	dest := filepath.Join(root, "dest")
	touch(t, filepath.Join(dest, "clash.txt"), 0o644)
	missing := filepath.Join(root, "src", "missing.txt")

	done, err := Paste(context.Background(), fsmodel.New(),
		clipboard.Payload{Paths: []string{ok, clash, missing}, Mode: fsmodel.Copy}, dest)
	assert.Equal(t, []string{filepath.Join(dest, "ok.txt")}, done)

	var be *BatchError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "paste", be.Op)
	assert.Equal(t, 3, be.Total)
	assert.Len(t, be.Errs, 2)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestNewFolder_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "New Folder")
	touch(t, filepath.Join(existing, "keep"), 0o644)

	path, err := NewFolder(context.Background(), fsmodel.New(), dir, "New Folder")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "New Folder (2)"), path)
	assert.FileExists(t, filepath.Join(existing, "keep"))
}

func TestNewFolder_MissingParent(t *testing.T) {
	_, err := NewFolder(context.Background(), fsmodel.New(), filepath.Join(t.TempDir(), "gone"), "New Folder")
	assert.Error(t, err)
}

func runBatch(b *DeleteBatch, answers ...Answer) []string {
	var prompts []string
	for {
		prompt, done := b.Advance()
		if done {
			return prompts
		}
		prompts = append(prompts, prompt)
		a := AnswerYes
		if len(answers) > 0 {
			a, answers = answers[0], answers[1:]
		}
		b.Answer(a)
	}
}

func TestDeleteBatch_SymlinkNeverDeletesTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	touch(t, target, 0o444)
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	b := NewDeleteBatch(context.Background(), fsmodel.New(), []string{link}, true)
	prompts := runBatch(b)

	assert.Empty(t, prompts, "symlinks are removed without confirmation")
	assert.Equal(t, []string{link}, b.Removed())
	assert.FileExists(t, target)
	assert.NoError(t, b.Err())
}

func TestDeleteBatch_ReadOnlySkippedWithNotice(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "r1"), filepath.Join(dir, "r2"), filepath.Join(dir, "r3")}
	for _, p := range paths {
		touch(t, p, 0o444)
	}

	b := NewDeleteBatch(context.Background(), fsmodel.New(), paths, true)
	prompts := runBatch(b)

	assert.Empty(t, prompts)
	assert.Empty(t, b.Removed())
	for _, p := range paths {
		assert.FileExists(t, p)
	}
	var be *BatchError
	require.ErrorAs(t, b.Err(), &be)
	assert.Len(t, be.Errs, 3)
	assert.True(t, errors.Is(b.Err(), ErrNotWritable))
}

func TestDeleteBatch_YesToAllStopsPrompting(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a"), filepath.Join(dir, "b"), filepath.Join(dir, "c")}
	for _, p := range paths {
		touch(t, p, 0o644)
	}

	b := NewDeleteBatch(context.Background(), fsmodel.New(), paths, true)
	prompts := runBatch(b, AnswerYesToAll)

	assert.Equal(t, []string{paths[0]}, prompts)
	assert.ElementsMatch(t, paths, b.Removed())
	assert.NoError(t, b.Err())
}

func TestDeleteBatch_NoCancelsRemainder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a"), filepath.Join(dir, "b"), filepath.Join(dir, "c")}
	for _, p := range paths {
		touch(t, p, 0o644)
	}

	b := NewDeleteBatch(context.Background(), fsmodel.New(), paths, true)
	prompts := runBatch(b, AnswerYes, AnswerNo)

	assert.Equal(t, paths[:2], prompts)
	assert.Equal(t, []string{paths[0]}, b.Removed())
	assert.True(t, b.Cancelled())
	assert.FileExists(t, paths[1])
	assert.FileExists(t, paths[2])
}

func TestDeleteBatch_NoConfirmRemovesWritable(t *testing.T) {
	dir := t.TempDir()
	rw := filepath.Join(dir, "rw")
	ro := filepath.Join(dir, "ro")
	touch(t, rw, 0o644)
	touch(t, ro, 0o444)

	b := NewDeleteBatch(context.Background(), fsmodel.New(), []string{rw, ro}, false)
	prompts := runBatch(b)

	assert.Empty(t, prompts)
	assert.Equal(t, []string{rw}, b.Removed())
	assert.Error(t, b.Err())
}

func TestDeleteBatch_AnswerWithoutPromptIsNoop(t *testing.T) {
	b := NewDeleteBatch(context.Background(), fsmodel.New(), nil, true)
	b.Answer(AnswerNo)
	assert.False(t, b.Cancelled())
	_, done := b.Advance()
	assert.True(t, done)
}
