package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileName is the document holding every persisted entry under the base dir.
const fileName = "storage.json"

// BaseDir returns the root data directory (~/.ttc).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttc"), nil
}

// Store is a durable name -> JSON value map kept in a single file, the
// command-line counterpart of browser local storage.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store backed by <base>/storage.json. The file is created
// lazily on the first Set.
func Open(base string) *Store {
	return &Store{path: filepath.Join(base, fileName)}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// load reads the whole document. Returns an empty map if not found.
func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		// Back up corrupt file and abort.
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", s.path, backupPath, err)
	}
	return doc, nil
}

// save atomically writes the whole document.
func (s *Store) save(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Get decodes the value stored under name into v. It reports false when
// nothing is stored under that name.
func (s *Store) Get(name string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := doc[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decoding %q from %s: %w", name, s.path, err)
	}
	return true, nil
}

// Set replaces the value stored under name.
func (s *Store) Set(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", name, err)
	}
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[name] = raw
	return s.save(doc)
}

// Delete removes name from the store. Deleting a missing name is not an error.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[name]; !ok {
		return nil
	}
	delete(doc, name)
	return s.save(doc)
}
