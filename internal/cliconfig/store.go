package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is a persistent key-value settings store backed by a single JSON
// document. Every Set/Unset is written through immediately, so a crashed
// invocation never loses credentials it already reported as saved.
type Store struct {
	path   string
	values map[string]any
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(home, ".homeyctl", "settings.json"), nil
}

// Open loads the store at the default location. A missing file yields an
// empty store, not an error.
func Open() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

func OpenPath(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]any),
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("opening settings file '%s': %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if err := json.NewDecoder(f).Decode(&s.values); err != nil {
		return nil, fmt.Errorf("decoding settings file '%s': %w", path, err)
	}
	return s, nil
}

// Get returns the stored value for key, or false when unset.
// Values read back from disk are generic JSON shapes (map[string]any etc.),
// callers decode them into typed structs.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Set(key string, value any) error {
	s.values[key] = value
	return s.save()
}

func (s *Store) Unset(key string) error {
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating settings directory '%s': %w", dir, err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening settings file '%s' for writing: %w", s.path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if err := json.NewEncoder(f).Encode(s.values); err != nil {
		return fmt.Errorf("encoding settings to file '%s': %w", s.path, err)
	}
	return nil
}
