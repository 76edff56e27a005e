// Package fsmodel is the filesystem model shared by the directory tree and
// both panes: enumeration, sorting, the directory-only filter, and the
// mutating operations (mkdir, rename, transfer, remove).
package fsmodel

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ParentName is the display name of the parent-link entry.
const ParentName = ".."

// Entry is one row of a directory listing.
type Entry struct {
	Name       string
	Path       string
	IsDir      bool // true for directories and symlinks that resolve to one
	IsSymlink  bool
	IsParent   bool // the ".." link
	Size       int64
	Mode       fs.FileMode
	ModTime    time.Time
	LinkTarget string
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool {
	return !e.IsParent && isHidden(e.Name)
}

// Type returns the human-readable type column.
func (e Entry) Type() string {
	switch {
	case e.IsParent, e.IsDir && !e.IsSymlink:
		return "Folder"
	case e.IsSymlink && e.IsDir:
		return "Folder Link"
	case e.IsSymlink:
		return "Link"
	}
	ext := strings.TrimPrefix(filepath.Ext(e.Name), ".")
	if ext == "" || ext == e.Name[1:] {
		return "File"
	}
	return strings.ToUpper(ext) + " File"
}

// SizeString formats Size for the detail view. Directories show nothing.
func (e Entry) SizeString() string {
	if e.IsDir {
		return ""
	}
	return HumanSize(e.Size)
}

// HumanSize formats a byte count using binary units.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Stat builds an Entry for path without following a trailing symlink,
// except to learn whether the link points at a directory.
func Stat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Name:    info.Name(),
		Path:    path,
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
	if info.Mode()&os.ModeSymlink != 0 {
		e.IsSymlink = true
		e.LinkTarget, _ = os.Readlink(path)
		if target, err := os.Stat(path); err == nil {
			e.IsDir = target.IsDir()
		}
	}
	return e, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != ParentName && name != "."
}
