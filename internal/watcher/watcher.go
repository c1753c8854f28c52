// Package watcher observes the template root for changes, with debouncing,
// so serve mode can invalidate the template registry and notify connected
// browsers. Builds do not depend on it: hot reload is guaranteed by the
// per-build registry invalidation, the watcher only makes it visible live.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pagesmith/pagesmith/internal/logging"
)

// ChangeEvent is one observed file change.
type ChangeEvent struct {
	Path string
	Op   string
}

// ChangeHandler receives debounced batches of change events.
type ChangeHandler func(events []ChangeEvent)

// FileWatcher watches directories recursively and delivers debounced
// change batches to its handlers.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   logging.Logger

	mutex    sync.Mutex
	handlers []ChangeHandler
	pending  []ChangeEvent
	timer    *time.Timer
}

// New creates a file watcher with the given debounce interval.
func New(debounce time.Duration, logger logging.Logger) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  fsw,
		debounce: debounce,
		logger:   logger.WithComponent("watcher"),
	}, nil
}

// OnChange registers a handler for debounced change batches.
func (w *FileWatcher) OnChange(handler ChangeHandler) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.handlers = append(w.handlers, handler)
}

// AddRecursive watches root and all its subdirectories.
func (w *FileWatcher) AddRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Start consumes filesystem events until ctx is cancelled.
func (w *FileWatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handleEvent(ctx, event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn(ctx, err, "watch error")
			}
		}
	}()
}

// Close stops the underlying watcher.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}

func (w *FileWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	// New directories need to be added to the watch set; everything else
	// is queued for the debounced flush.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn(ctx, err, "watching new directory", "path", event.Name)
			}
		}
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.pending = append(w.pending, ChangeEvent{Path: event.Name, Op: event.Op.String()})

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *FileWatcher) flush() {
	w.mutex.Lock()
	events := w.pending
	w.pending = nil
	handlers := make([]ChangeHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mutex.Unlock()

	if len(events) == 0 {
		return
	}

	for _, handler := range handlers {
		handler(events)
	}
}
