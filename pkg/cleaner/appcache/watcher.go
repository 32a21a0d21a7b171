package appcache

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/instafoody/cleaner/pkg/cleaner/logging"
)

// Invalidator binds filesystem change notifications to a cache
// invalidation callback, so a cached derived list is dropped as soon
// as one of its source directories changes.
type Invalidator struct {
	watcher    *fsnotify.Watcher
	invalidate func()
	log        *logging.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Watch starts watching the given directories and calls invalidate on
// every change event under them. Directories that do not exist are
// skipped. Close stops the watcher.
func Watch(dirs []string, invalidate func()) (*Invalidator, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	inv := &Invalidator{
		watcher:    fsw,
		invalidate: invalidate,
		log:        logging.Get("appcache"),
		done:       make(chan struct{}),
	}

	for _, dir := range dirs {
		info, err := os.Lstat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			inv.log.Debug("cannot watch directory", "dir", dir, "error", err)
		}
	}

	go inv.loop()
	return inv, nil
}

// loop consumes watcher events until Close.
func (i *Invalidator) loop() {
	for {
		select {
		case <-i.done:
			return
		case _, ok := <-i.watcher.Events:
			if !ok {
				return
			}
			i.invalidate()
		case err, ok := <-i.watcher.Errors:
			if !ok {
				return
			}
			i.log.Debug("watcher error", "error", err)
		}
	}
}

// Close stops watching. Safe to call more than once.
func (i *Invalidator) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil
	}
	i.closed = true
	close(i.done)
	return i.watcher.Close()
}
