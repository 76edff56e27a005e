package fsmodel

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// TransferMode selects move or copy semantics for Transfer.
type TransferMode int

const (
	Copy TransferMode = iota
	Move
)

func (m TransferMode) String() string {
	if m == Move {
		return "move"
	}
	return "copy"
}

// ErrIntoItself is returned when a directory would be transferred into its
// own subtree.
var ErrIntoItself = errors.New("destination is inside the source")

// Transfer moves or copies src into destDir, keeping its base name, and
// returns the new path. An existing entry at the destination is never
// replaced.
func (m *Model) Transfer(src, destDir string, mode TransferMode) (string, error) {
	src = filepath.Clean(src)
	destDir = filepath.Clean(destDir)
	target := filepath.Join(destDir, filepath.Base(src))

	if within(destDir, src) {
		return "", fmt.Errorf("%s %s to %s: %w", mode, src, destDir, ErrIntoItself)
	}
	if _, err := os.Lstat(target); err == nil {
		return "", fmt.Errorf("%s %s: %s: %w", mode, src, target, fs.ErrExist)
	}

	fields := log.Fields{"op": mode.String(), "path": src, "dest": target}
	switch mode {
	case Move:
		err := os.Rename(src, target)
		if err == nil {
			log.WithFields(fields).Debug("renamed")
			return target, nil
		}
		if !errors.Is(err, syscall.EXDEV) {
			return "", fmt.Errorf("move %s: %w", src, err)
		}
		if err := copyTree(src, target); err != nil {
			_ = os.RemoveAll(target)
			return "", fmt.Errorf("move %s: %w", src, err)
		}
		if err := os.RemoveAll(src); err != nil {
			return target, fmt.Errorf("move %s: copied but source not removed: %w", src, err)
		}
		log.WithFields(fields).Debug("moved across devices")
	default:
		if err := copyTree(src, target); err != nil {
			_ = os.RemoveAll(target)
			return "", fmt.Errorf("copy %s: %w", src, err)
		}
		log.WithFields(fields).Debug("copied")
	}
	return target, nil
}

// within reports whether dir is root or lies beneath it.
func within(dir, root string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func copyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(link, dst)
	case info.IsDir():
		if err := os.Mkdir(dst, info.Mode().Perm()|0o700); err != nil {
			return err
		}
		children, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, c := range children {
			if err := copyTree(filepath.Join(src, c.Name()), filepath.Join(dst, c.Name())); err != nil {
				return err
			}
		}
		return os.Chmod(dst, info.Mode().Perm())
	case info.Mode().IsRegular():
		return copyFile(src, dst, info)
	default:
		return fmt.Errorf("%s: unsupported file type %s", src, info.Mode().Type())
	}
}

func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
