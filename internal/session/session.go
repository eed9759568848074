// Package session holds the API key that identifies the client to the
// backend and persists it across runs.
package session

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/trivial-time-client/internal/storage"
)

// StorageName is the fixed name the key is persisted under.
const StorageName = "apiKeys"

// TokenType is reported on tokens handed out by the store.
const TokenType = "key"

// ErrNoKey is returned by Token while no key is set.
var ErrNoKey = errors.New("no API key set")

// persisted is the on-disk shape of the credential.
type persisted struct {
	APIKey string `json:"apiKey"`
}

// Backend is the durable storage the key is written to.
type Backend interface {
	Get(name string, v any) (bool, error)
	Set(name string, v any) error
}

// Store holds a single API key. The zero value is an unauthenticated,
// non-persisting store.
type Store struct {
	mu      sync.RWMutex
	key     string
	backend Backend
}

// Load restores the key persisted in backend. When nothing is stored the
// store starts with defaultKey, which is not persisted.
func Load(backend Backend, defaultKey string) (*Store, error) {
	s := &Store{backend: backend, key: defaultKey}
	var rec persisted
	found, err := backend.Get(StorageName, &rec)
	if err != nil {
		return s, fmt.Errorf("restoring API key: %w", err)
	}
	if found {
		s.key = rec.APIKey
	}
	return s, nil
}

// SetKey replaces the key and persists it.
func (s *Store) SetKey(value string) error {
	s.mu.Lock()
	s.key = value
	s.mu.Unlock()
	return s.Persist()
}

// Clear forgets the key and persists the empty value.
func (s *Store) Clear() error {
	return s.SetKey("")
}

// HasKey reports whether a non-empty key is set.
func (s *Store) HasKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != ""
}

// Key returns the current key, possibly empty.
func (s *Store) Key() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Persist writes the current key to the backend, if any.
func (s *Store) Persist() error {
	if s.backend == nil {
		return nil
	}
	if err := s.backend.Set(StorageName, persisted{APIKey: s.Key()}); err != nil {
		return fmt.Errorf("persisting API key: %w", err)
	}
	return nil
}

// Token implements oauth2.TokenSource. The key never expires.
func (s *Store) Token() (*oauth2.Token, error) {
	key := s.Key()
	if key == "" {
		return nil, ErrNoKey
	}
	return &oauth2.Token{AccessToken: key, TokenType: TokenType}, nil
}

var _ oauth2.TokenSource = (*Store)(nil)

// Compile-time check that the file store satisfies Backend.
var _ Backend = (*storage.Store)(nil)
