// Package state persists small key-value records, such as the tour
// completion flag, in a YAML file under the user's grove directory.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/tour/errors"
	"github.com/grovetools/tour/pkg/paths"
)

// State is the decoded state file: a flat map of keys to arbitrary values.
type State map[string]interface{}

// DefaultPath returns the default state file, ~/.grove/tour/state.yml.
func DefaultPath() (string, error) {
	return paths.StateFile()
}

// Store reads and writes one state file. Every operation re-reads the file,
// so separate processes see each other's writes.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by path. The file need not exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load loads the state file. A missing file yields an empty state.
func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, errors.StateReadFailed(s.path, err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, errors.StateReadFailed(s.path, fmt.Errorf("parse state file: %w", err))
	}
	if st == nil {
		st = make(State)
	}
	return st, nil
}

// Save replaces the state file with st.
func (s *Store) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(st)
}

func (s *Store) save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.StateWriteFailed(s.path, fmt.Errorf("create state directory: %w", err))
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return errors.StateWriteFailed(s.path, fmt.Errorf("marshal state: %w", err))
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.StateWriteFailed(s.path, err)
	}
	return nil
}

// Get retrieves a value by key.
func (s *Store) Get(key string) (interface{}, bool, error) {
	st, err := s.Load()
	if err != nil {
		return nil, false, err
	}
	val, ok := st[key]
	return val, ok, nil
}

// GetString returns the value for key if it is a string, and "" otherwise.
func (s *Store) GetString(key string) (string, error) {
	val, ok, err := s.Get(key)
	if err != nil || !ok {
		return "", err
	}
	str, _ := val.(string)
	return str, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	st[key] = value
	return s.save(st)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := st[key]; !ok {
		return nil
	}
	delete(st, key)
	return s.save(st)
}
