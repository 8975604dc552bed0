// Package platform receives files dropped onto a window from the desktop.
package platform

import (
	"image"
	"sync"

	"github.com/justyntemme/tabdeck/internal/debug"
)

// DropHandler is called with the files dropped from an external source and
// the drop point in window coordinates. It runs on the platform's UI thread
// and must not block.
type DropHandler func(paths []string, at image.Point)

var (
	dropMu   sync.Mutex
	handlers = make(map[uintptr]DropHandler)
)

// register routes drops on the native window view to handler
func register(view uintptr, handler DropHandler) {
	dropMu.Lock()
	defer dropMu.Unlock()
	handlers[view] = handler
}

// unregister forgets view and reports whether it was registered
func unregister(view uintptr) bool {
	dropMu.Lock()
	defer dropMu.Unlock()
	_, ok := handlers[view]
	delete(handlers, view)
	return ok
}

// deliver hands a drop to the handler registered for view
func deliver(view uintptr, paths []string, at image.Point) bool {
	dropMu.Lock()
	handler := handlers[view]
	dropMu.Unlock()

	if handler == nil || len(paths) == 0 {
		debug.Log(debug.APP, "[DnD] Ignoring %d files for view 0x%x", len(paths), view)
		return false
	}
	debug.Log(debug.APP, "[DnD] Delivering %d files at %v", len(paths), at)
	handler(paths, at)
	return true
}
