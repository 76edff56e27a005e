// Package logging routes logrus output to a file; the terminal belongs to
// the UI while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// DefaultFile returns <UserCacheDir>/filemanager/filemanager.log.
func DefaultFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("logging: user cache dir: %w", err)
	}
	return filepath.Join(dir, "filemanager", "filemanager.log"), nil
}

// Setup points the standard logrus logger at path (DefaultFile when empty)
// with the given level. The returned closer closes the log file.
func Setup(path, level string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	if path == "" {
		if path, err = DefaultFile(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	log.SetOutput(f)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})
	log.WithFields(log.Fields{"path": path, "level": lvl.String()}).Debug("logging started")
	return f, nil
}
