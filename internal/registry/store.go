// pattern: Imperative Shell

package registry

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// Store loads and saves a Registry as a TOML document at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. A missing file yields an empty registry.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceRead, err)
	}

	reg := New()
	if err := toml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistenceRead, s.path, err)
	}
	for i := range reg.Projects {
		if reg.Projects[i].Tags == nil {
			reg.Projects[i].Tags = []string{}
		}
	}
	return reg, nil
}

// Save writes the whole registry, creating parent directories as needed.
// The document is written to a temporary file and renamed into place.
func (s *Store) Save(reg *Registry) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(reg); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return nil
}

// Lock takes a non-blocking exclusive lock next to the registry file for
// the duration of a mutating command. The caller must Unlock the returned
// handle. A lock held by another process fails with ErrRegistryBusy.
func (s *Store) Lock() (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}
	fl := flock.New(s.path + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrRegistryBusy, fl.Path())
	}
	return fl, nil
}
