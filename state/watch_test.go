package state_test

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/tour/state"
	"github.com/grovetools/tour/testutil"
)

func TestWatchReportsChanges(t *testing.T) {
	store := state.NewStore(testutil.StatePath(t))
	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, time.Millisecond, logrus.NewEntry(log), func() {
			changes <- struct{}{}
		})
	}()

	// Give the watcher time to register the directory.
	require.Eventually(t, func() bool {
		if err := store.Set("onboarding_completed_v1", "1"); err != nil {
			return false
		}
		select {
		case <-changes:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	path := testutil.StatePath(t)
	store := state.NewStore(path)
	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	changes := 0
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path+".bak", []byte("x: 1\n"), 0644)
	}()
	require.NoError(t, store.Watch(ctx, time.Millisecond, logrus.NewEntry(log), func() { changes++ }))
	assert.Zero(t, changes)
}

func TestWatchReportsFinalStateOfBurst(t *testing.T) {
	store := state.NewStore(testutil.StatePath(t))
	log := logrus.New()
	log.SetOutput(io.Discard)

	const debounce = 100 * time.Millisecond
	var mu sync.Mutex
	var seen []string
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = store.Watch(ctx, debounce, logrus.NewEntry(log), func() {
			v, _ := store.GetString("k")
			mu.Lock()
			seen = append(seen, v)
			mu.Unlock()
		})
	}()
	reports := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), seen...)
	}

	// Wait until the watcher is registered.
	require.Eventually(t, func() bool {
		if err := store.Set("k", "ready"); err != nil {
			return false
		}
		time.Sleep(3 * debounce)
		return len(reports()) > 0
	}, 5*time.Second, 10*time.Millisecond)
	before := len(reports())

	require.NoError(t, store.Set("k", "a"))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.Set("k", "b"))

	require.Eventually(t, func() bool {
		return len(reports()) > before
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(3 * debounce)

	got := reports()[before:]
	assert.Equal(t, []string{"b"}, got)
}
