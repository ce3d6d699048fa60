package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/hidralife/internal/logging"
	"github.com/theirongolddev/hidralife/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RefreshesOnWrite(t *testing.T) {
	dir := t.TempDir()
	var loads atomic.Int32
	load := func() (*state.State, error) {
		loads.Add(1)
		return state.New(), nil
	}
	s := New(Config{DataDir: dir, Watch: true}, load)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watch(ctx) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "hidralife.db"), []byte("x"), 0o600)
		return loads.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	s := New(Config{DataDir: filepath.Join(t.TempDir(), "missing")}, func() (*state.State, error) {
		return state.New(), nil
	})
	assert.Error(t, s.watch(context.Background()))
}

func TestWatch_IgnoresOwnLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.New(logging.Options{File: filepath.Join(dir, "hidralifed.log")})
	require.NoError(t, err)

	var loads atomic.Int32
	load := func() (*state.State, error) {
		loads.Add(1)
		return nil, errors.New("store unavailable")
	}
	s := New(Config{DataDir: dir, Watch: true}, load, WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watch(ctx) }()

	// Give the watcher time to register before the single store write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hidralife.db"), []byte("x"), 0o600))

	require.Eventually(t, func() bool { return loads.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	// Each failed load logs into DataDir; that write must not trigger another load.
	time.Sleep(5 * watchDebounce)
	assert.Equal(t, int32(1), loads.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	_ = logger.Sync()
}
