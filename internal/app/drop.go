package app

import (
	"image"
	"log"

	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
	"github.com/justyntemme/tabdeck/internal/ui"
)

// externalDrop is a set of files dropped onto the window from the desktop
type externalDrop struct {
	paths []string
	at    image.Point // window coordinates in pixels
}

// queueDrop hands dropped files to the window's event loop. Safe to call
// from any goroutine.
func (w *Window) queueDrop(paths []string, at image.Point) {
	select {
	case w.drops <- externalDrop{paths: paths, at: at}:
	default:
		log.Printf("Window %s: ignoring %d dropped files, too many pending", w.id, len(paths))
	}
	w.window.Invalidate()
}

// drainDrops opens every pending drop
func (w *Window) drainDrops() {
	for {
		select {
		case d := <-w.drops:
			w.openDropped(d)
		default:
			return
		}
	}
}

// openDropped opens one tab per dropped file where the files were released
func (w *Window) openDropped(d externalDrop) {
	// The strip is about to reflow under any drag in progress
	if w.ui.Strip.CancelDrag(w.ctl) {
		w.ui.Offsets.Clear()
	}
	tabs := make([]tabstrip.Tab, 0, len(d.paths))
	for _, p := range d.paths {
		tabs = append(tabs, newTab(p))
	}
	res := tabstrip.DropIndex(w.ui.Strip.Slots(), w.ui.Strip.AxisPos(d.at))
	debug.Log(debug.APP, "Opening %d dropped files at index %d group=%q", len(tabs), res.Index, res.Group)
	out, err := tabstrip.InsertDropped(w.col, res, tabs)
	w.handleUIEvent(ui.UIEvent{Action: ui.ActionExternalDrop, Outcome: out, Err: err})
}
