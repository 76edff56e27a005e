// Package settings persists window state in an organisation/application
// scoped key-value store on disk.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"
	log "github.com/sirupsen/logrus"
)

const (
	// StateDirEnv overrides the store location (used by tests).
	StateDirEnv = "FILEMANAGER_STATE_DIR"

	stateSubdir = "state"
)

// DefaultDir returns <UserConfigDir>/<org>/<app>/state, or the value of
// FILEMANAGER_STATE_DIR when set.
func DefaultDir(org, app string) (string, error) {
	if dir := os.Getenv(StateDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("settings: user config dir: %w", err)
	}
	return filepath.Join(base, org, app, stateSubdir), nil
}

// Store is a flat key-value store: one file per key, JSON values.
type Store struct {
	d   *diskv.Diskv
	dir string
}

// Open creates the store directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("settings: create %s: %w", dir, err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return nil },
			CacheSizeMax: 64 * 1024,
		}),
		dir: dir,
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// SetValue stores v under key.
func (s *Store) SetValue(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("settings: write %s: %w", key, err)
	}
	return nil
}

// Decode reads key into out. It reports false when the key is missing or
// its value does not decode; out is left untouched in that case.
func (s *Store) Decode(key string, out any) bool {
	b, err := s.d.Read(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.WithField("key", key).WithError(err).Warn("settings: ignoring undecodable value")
		return false
	}
	return true
}

// Contains reports whether key has a stored value.
func (s *Store) Contains(key string) bool {
	return s.d.Has(key)
}

// Bool returns the boolean under key, or def.
func (s *Store) Bool(key string, def bool) bool {
	v := def
	s.Decode(key, &v)
	return v
}

// Int returns the integer under key, or def.
func (s *Store) Int(key string, def int) int {
	v := def
	s.Decode(key, &v)
	return v
}

// String returns the string under key, or def.
func (s *Store) String(key, def string) string {
	v := def
	s.Decode(key, &v)
	return v
}

// Ints returns the integer list under key, or def.
func (s *Store) Ints(key string, def []int) []int {
	var v []int
	if !s.Decode(key, &v) {
		return def
	}
	return v
}

// Remove deletes key. Missing keys are not an error.
func (s *Store) Remove(key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("settings: remove %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys, sorted.
func (s *Store) Keys() []string {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes every key.
func (s *Store) Clear() error {
	for _, k := range s.Keys() {
		if err := s.Remove(k); err != nil {
			return err
		}
	}
	return nil
}
