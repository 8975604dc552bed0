//go:build windows

package app

import (
	"gioui.org/app"
	"gioui.org/io/event"

	"github.com/justyntemme/tabdeck/internal/platform"
)

// handlePlatformEvent starts accepting file drops once the native window
// exists and stops when it goes away
func (w *Window) handlePlatformEvent(e event.Event) {
	evt, ok := e.(app.Win32ViewEvent)
	if !ok {
		return
	}
	if w.view != 0 && w.view != evt.HWND {
		platform.CleanupExternalDrop(w.view)
		w.view = 0
	}
	if evt.Valid() && w.view == 0 {
		w.view = evt.HWND
		platform.SetupExternalDrop(w.view, w.queueDrop)
	}
}
