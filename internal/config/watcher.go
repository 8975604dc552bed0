package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/tabdeck/internal/debug"
)

// Watcher reloads the config file when it changes on disk and publishes
// the reloaded configuration
type Watcher struct {
	manager    *Manager
	watcher    *fsnotify.Watcher
	file       string
	notify     chan Config   // Reloaded configurations
	done       chan struct{} // Shutdown signal
	closeOnce  sync.Once
	debounceMs int
}

// NewWatcher watches the file m was loaded from. The directory is watched
// rather than the file so editors that save by renaming are seen.
func NewWatcher(m *Manager, debounceMs int) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	file := m.Path()
	if file == "" {
		file = ConfigPath()
	}
	if err := w.Add(filepath.Dir(file)); err != nil {
		w.Close()
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 200 // Default 200ms debounce
	}

	cw := &Watcher{
		manager:    m,
		watcher:    w,
		file:       filepath.Clean(file),
		notify:     make(chan Config, 1),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}
	go cw.run()
	debug.Log(debug.CONFIG, "Watching %s", cw.file)
	return cw, nil
}

// run processes filesystem events with debouncing
func (cw *Watcher) run() {
	var lastEvent time.Time
	pending := false
	debounce := time.Duration(cw.debounceMs) * time.Millisecond
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-cw.done:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.file {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				lastEvent = time.Now()
				pending = true
				debug.Log(debug.CONFIG, "FSNotify event: %s on %s", event.Op, event.Name)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.CONFIG, "FSNotify error: %v", err)

		case <-ticker.C:
			if !pending || time.Since(lastEvent) < debounce {
				continue
			}
			pending = false
			cw.reload()
		}
	}
}

func (cw *Watcher) reload() {
	if err := cw.manager.LoadFrom(cw.file); err != nil {
		debug.Log(debug.CONFIG, "Reload failed: %v", err)
		return
	}
	cfg := cw.manager.Get()
	// Keep only the newest configuration
	select {
	case <-cw.notify:
	default:
	}
	select {
	case cw.notify <- cfg:
		debug.Log(debug.CONFIG, "Config reloaded")
	default:
	}
}

// Changes returns the channel that receives reloaded configurations
func (cw *Watcher) Changes() <-chan Config {
	return cw.notify
}

// Close shuts down the watcher
func (cw *Watcher) Close() error {
	var err error
	cw.closeOnce.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
	})
	return err
}
