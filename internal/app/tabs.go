package app

import (
	"log"

	"gioui.org/io/system"
	"github.com/google/uuid"

	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
	"github.com/justyntemme/tabdeck/internal/ui"
)

// createNewTab adds a tab for path where the config says new tabs go and
// makes it active
func (w *Window) createNewTab(path string) {
	t := newTab(path)
	at := w.col.Len()

	if w.cfg.Tabs.NewTabLocation == "after_active" {
		if it, ok := w.col.Get(w.col.Active()); ok {
			if tabstrip.IsPinned(it) {
				at = w.col.PinnedCount()
			} else {
				// Opening next to a grouped tab joins its group
				at = w.col.IndexOf(it.ItemID()) + 1
				t.GroupID = tabstrip.GroupOf(it)
			}
		}
	}

	w.col.Insert(at, t)
	if err := w.col.Validate(); err != nil {
		w.col.Remove(t.ID)
		t.GroupID = ""
		w.col.Insert(w.col.Len(), t)
		debug.Log(debug.APP, "New tab fell back to the end: %v", err)
	}
	w.col.SetActive(t.ID)
	debug.Log(debug.APP, "Created new tab %s at %s (index %d)", t.ID, path, w.col.IndexOf(t.ID))
	w.save()
}

// closeTab closes a tab or split view
func (w *Window) closeTab(id string) {
	if _, ok := w.col.Get(id); !ok {
		return
	}
	w.ui.Strip.CancelDrag(w.ctl)
	// The remaining tabs reflow at once
	w.ui.Offsets.Clear()

	debug.Log(debug.APP, "Closing tab %s", id)
	w.col.Remove(id)
	w.col.PruneEmptyGroups()
	w.save()

	if w.tabCount() == 0 && w.cfg.Tabs.LastTabBehavior == "close_window" {
		debug.Log(debug.APP, "Last tab closed, closing window %s", w.id)
		w.window.Perform(system.ActionClose)
	}
}

// switchTab activates a tab
func (w *Window) switchTab(id string) {
	if id == w.col.Active() {
		return
	}
	debug.Log(debug.APP, "Switching from tab %s to tab %s", w.col.Active(), id)
	w.col.SetActive(id)
	w.save()
}

// cycleTab activates the visible tab step positions away, wrapping around
func (w *Window) cycleTab(step int) {
	var ids []string
	cur := -1
	for _, it := range w.col.Visible() {
		if tabstrip.Classify(it) == tabstrip.KindGroupLabel {
			continue
		}
		if it.ItemID() == w.col.Active() {
			cur = len(ids)
		}
		ids = append(ids, it.ItemID())
	}
	if len(ids) <= 1 {
		return
	}
	next := ((cur+step)%len(ids) + len(ids)) % len(ids)
	w.switchTab(ids[next])
}

// toggleCollapsed collapses or expands a group
func (w *Window) toggleCollapsed(groupID string) {
	g, ok := w.col.Label(groupID)
	if !ok {
		return
	}
	w.col.SetCollapsed(groupID, !g.Collapsed)
	debug.Log(debug.APP, "Group %s collapsed=%v", groupID, !g.Collapsed)
	w.save()
}

// togglePin moves a tab across the pinned boundary. Groups cannot be pinned.
func (w *Window) togglePin(id string) {
	it, ok := w.col.Get(id)
	if !ok || tabstrip.Classify(it) == tabstrip.KindGroupLabel {
		return
	}
	target := tabstrip.DropPinnedZone
	if tabstrip.IsPinned(it) {
		target = tabstrip.DropUnpinnedZone
	}
	out, err := tabstrip.Commit(w.col, tabstrip.Drop{Moving: []tabstrip.Item{it}, Target: target})
	w.applyOutcome("pin", out, err)
}

// detach moves an element into a new window
func (w *Window) detach(id string) {
	it, ok := w.col.Get(id)
	if !ok {
		return
	}
	out, err := tabstrip.Commit(w.col, tabstrip.Drop{Moving: []tabstrip.Item{it}, Target: tabstrip.DropNewWindow})
	if err == nil && out.Kind == tabstrip.OutcomeNone {
		w.ui.Toast.Show("The only tab of a window cannot be detached", ui.ToastInfo)
		return
	}
	w.applyOutcome("detach", out, err)
}

// applyOutcome persists a committed change and opens a window for
// detached items
func (w *Window) applyOutcome(what string, out tabstrip.Outcome, err error) {
	if err != nil {
		log.Printf("Tab %s failed: %v", what, err)
		w.ui.Toast.ShowError("Could not " + what + " tab: " + err.Error())
		return
	}
	if out.Kind == tabstrip.OutcomeNone {
		return
	}
	debug.Log(debug.DRAG, "Committed %s: %s %d items group=%s", what, out.Kind, len(out.Items), out.GroupID)

	if out.Kind == tabstrip.OutcomeDetached {
		col := tabstrip.NewCollection(out.Items...)
		if err := col.Validate(); err != nil {
			log.Printf("Detached items rejected: %v", err)
			w.ui.Toast.ShowError("Could not open a new window: " + err.Error())
		} else {
			w.o.openWindow(uuid.NewString(), col)
		}
	}
	w.save()
}

// openExternally opens the path behind a tab with the system handler
func (w *Window) openExternally(id string) {
	it, ok := w.col.Get(id)
	if !ok {
		return
	}
	var path string
	switch v := it.(type) {
	case tabstrip.Tab:
		path = v.Path
	case tabstrip.SplitView:
		path = v.Left.Path
	}
	if path == "" {
		return
	}
	if err := platformOpen(path); err != nil {
		log.Printf("Error opening file: %v", err)
		w.ui.Toast.ShowError("Could not open " + path)
	}
}
