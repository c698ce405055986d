package learn

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_BroadcastsOnChange(t *testing.T) {
	dir := t.TempDir()
	hub := NewHub()
	defer hub.Close()
	ch := hub.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, hub) }()

	// give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>v1</p>"), 0o600))

	select {
	case e := <-ch:
		assert.Equal(t, "reload", e.Type)
		assert.Contains(t, e.Path, "index.html")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event after file write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_MissingDirIsNotAnError(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := Watch(ctx, filepath.Join(t.TempDir(), "nope"), hub)
	assert.NoError(t, err, "missing platform dir keeps the server running")
}
