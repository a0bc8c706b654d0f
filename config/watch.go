package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadEvent is posted onto the event loop's channel whenever the config
// file changes; it never touches application state directly (spec.md
// §4.6/§5) — the event loop decides what to do with it.
type ReloadEvent struct{}

// Watcher watches the config file for changes and posts ReloadEvent onto
// events. It runs on its own goroutine, started by Watch.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// Watch starts watching path's containing directory (editors commonly
// replace the file via rename-into-place, which fsnotify only observes
// reliably at the directory level) and posts ReloadEvent on any write or
// create matching path.
func Watch(path string, events chan<- interface{}) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch: %w", err)
	}

	w := &Watcher{fsw: fsw}
	go w.loop(path, events)
	return w, nil
}

func (w *Watcher) loop(path string, events chan<- interface{}) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				events <- ReloadEvent{}
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }
