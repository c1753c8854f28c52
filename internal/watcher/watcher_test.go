package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/logging"
)

func TestWatcherDeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()

	w, err := New(50*time.Millisecond, logging.NewNop())
	require.NoError(t, err)
	defer w.Close()

	batches := make(chan []ChangeEvent, 1)
	w.OnChange(func(events []ChangeEvent) {
		select {
		case batches <- events:
		default:
		}
	})

	require.NoError(t, w.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html.tmpl"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.html.tmpl"), []byte("two"), 0o644))

	select {
	case events := <-batches:
		assert.NotEmpty(t, events)
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch delivered")
	}
}

func TestWatcherAddRecursiveCoversSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	w, err := New(50*time.Millisecond, logging.NewNop())
	require.NoError(t, err)
	defer w.Close()

	batches := make(chan []ChangeEvent, 1)
	w.OnChange(func(events []ChangeEvent) {
		select {
		case batches <- events:
		default:
		}
	})

	require.NoError(t, w.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "nested.html.tmpl"), []byte("x"), 0o644))

	select {
	case events := <-batches:
		require.NotEmpty(t, events)
		assert.Contains(t, events[0].Path, "nested.html.tmpl")
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch delivered for subdirectory")
	}
}
