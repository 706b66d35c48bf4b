// Package testutil provides in-memory fakes for the tour's external
// capabilities and a manually advanced clock.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/tour/tour"
)

// FakeClock is a tour.Clock that only moves when told to.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MemoryStore is an in-memory tour.PersistenceGateway with injectable
// failures. A MemoryStore shared between controllers models the durable
// store across launches.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	GetErr error
	SetErr error
	// OnSet, if set, is called for every Set attempt before it is applied.
	OnSet func(key, value string)

	Gets int
	Sets int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements tour.PersistenceGateway.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements tour.PersistenceGateway.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.Sets++
	onSet := s.OnSet
	err := s.SetErr
	s.mu.Unlock()

	if onSet != nil {
		onSet(key, value)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Value returns the stored value for key.
func (s *MemoryStore) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// StubNotifier is a tour.NotificationGateway returning a fixed outcome.
type StubNotifier struct {
	Success bool
	Err     error
	Calls   int
}

// Request implements tour.NotificationGateway.
func (n *StubNotifier) Request(context.Context) (tour.NotificationResult, error) {
	n.Calls++
	if n.Err != nil {
		return tour.NotificationResult{}, n.Err
	}
	return tour.NotificationResult{Success: n.Success}, nil
}

// StatePath returns a state file path inside a per-test temporary directory.
func StatePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".grove", "tour", "state.yml")
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
