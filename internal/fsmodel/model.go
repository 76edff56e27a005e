package fsmodel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// maxCollisionSuffix bounds the "Name (N)" search in Mkdir.
const maxCollisionSuffix = 999

// ErrInvalidName is returned for empty names or names containing a separator.
var ErrInvalidName = errors.New("invalid name")

// Lister enumerates a directory.
type Lister interface {
	List(dir string) ([]Entry, error)
}

// Model is the filesystem model. The zero value hides dotfiles.
// It is used from the UI event loop only and holds no locks.
type Model struct {
	showHidden bool
}

// Ensure Model implements Lister.
var _ Lister = (*Model)(nil)

// New creates a model that hides dotfiles.
func New() *Model {
	return &Model{}
}

// SetShowHidden toggles whether dotfiles are listed.
func (m *Model) SetShowHidden(show bool) {
	m.showHidden = show
}

// ShowHidden reports whether dotfiles are listed.
func (m *Model) ShowHidden() bool {
	return m.showHidden
}

// List returns the entries of dir in directory order. "." is never included;
// ".." is included for every directory except the filesystem root.
func (m *Model) List(dir string) ([]Entry, error) {
	dir = filepath.Clean(dir)
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(des)+1)
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, Entry{
			Name:     ParentName,
			Path:     parent,
			IsDir:    true,
			IsParent: true,
		})
	}
	for _, de := range des {
		if !m.showHidden && isHidden(de.Name()) {
			continue
		}
		e, err := Stat(filepath.Join(dir, de.Name()))
		if err != nil {
			// Removed between ReadDir and Lstat.
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Mkdir creates a directory called name inside parent and returns its path.
// If name is taken, "name (2)", "name (3)", ... are tried; an existing entry
// is never overwritten.
func (m *Model) Mkdir(parent, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	candidate := name
	for i := 2; ; i++ {
		path := filepath.Join(parent, candidate)
		err := os.Mkdir(path, 0o755)
		if err == nil {
			log.WithFields(log.Fields{"op": "mkdir", "path": path}).Debug("created directory")
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("mkdir %s: %w", path, err)
		}
		if i > maxCollisionSuffix {
			return "", fmt.Errorf("mkdir %s: no free name: %w", filepath.Join(parent, name), fs.ErrExist)
		}
		candidate = fmt.Sprintf("%s (%d)", name, i)
	}
}

// Rename renames path to newName within the same directory and returns the
// new path. It refuses to replace an existing entry.
func (m *Model) Rename(path, newName string) (string, error) {
	if err := validateName(newName); err != nil {
		return "", err
	}
	target := filepath.Join(filepath.Dir(path), newName)
	if target == path {
		return path, nil
	}
	if _, err := os.Lstat(target); err == nil {
		return "", fmt.Errorf("rename %s: %s: %w", path, newName, fs.ErrExist)
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}
	log.WithFields(log.Fields{"op": "rename", "path": path, "dest": target}).Debug("renamed")
	return target, nil
}

// Remove deletes path. A symlink is removed itself, never its target;
// directories are removed recursively.
func (m *Model) Remove(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	log.WithFields(log.Fields{"op": "remove", "path": path}).Debug("removed")
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ParentName || strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
