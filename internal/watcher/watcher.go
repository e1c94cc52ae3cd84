// Package watcher observes the declared configuration document and triggers
// reconciliation when it changes. It backs the watch command's auto-refresh
// behavior.
package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/daymxn/vidos/internal/logger"
)

// debounce collapses editor write bursts into a single change event.
const debounce = 250 * time.Millisecond

// Watcher watches a single file and invokes a callback on writes.
type Watcher struct {
	path     string
	onChange func()
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
}

// New creates a watcher for the file at path. onChange runs on the watch
// goroutine after each write, debounced.
func New(path string, onChange func()) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching. It returns once the underlying watch is
// registered; events are handled on a background goroutine until Stop.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher

	go w.loop()

	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	return nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			}
		case <-fire:
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		case <-w.stopCh:
			return
		}
	}
}

// Stop ends the watch.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
