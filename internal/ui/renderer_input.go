package ui

import (
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"

	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// Keyboard input handling

func (r *Renderer) processGlobalInput(gtx layout.Context, col *tabstrip.Collection, ctl *tabstrip.Controller, keyTag event.Tag) UIEvent {
	if r.hotkeys == nil {
		return UIEvent{}
	}

	filters := r.hotkeys.Filters(keyTag)
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		debug.Log(debug.HOTKEY, "Key pressed: name=%q mods=0x%x", k.Name, k.Modifiers)

		// Escape only matters while dragging
		if r.hotkeys.Escape.Matches(k) {
			if r.Strip.CancelDrag(ctl) {
				debug.Log(debug.HOTKEY, "Escape cancelled drag")
				return UIEvent{Action: ActionDragCancelled}
			}
			r.Strip.ClearSelection()
			continue
		}

		// Everything else is ignored mid-drag so the collection stays put
		if ctl.Active() {
			continue
		}

		active := col.Active()
		switch {
		case r.hotkeys.NewTab.Matches(k):
			return UIEvent{Action: ActionNewTab}
		case r.hotkeys.CloseTab.Matches(k) && active != "":
			return UIEvent{Action: ActionCloseTab, ID: active}
		case r.hotkeys.NextTab.Matches(k):
			debug.Log(debug.HOTKEY, "NextTab hotkey matched: %s", r.hotkeys.NextTab.String())
			return UIEvent{Action: ActionNextTab}
		case r.hotkeys.PrevTab.Matches(k):
			debug.Log(debug.HOTKEY, "PrevTab hotkey matched: %s", r.hotkeys.PrevTab.String())
			return UIEvent{Action: ActionPrevTab}
		case r.hotkeys.MoveTabLeft.Matches(k) && active != "":
			return UIEvent{Action: ActionMoveTab, ID: active, Step: -1}
		case r.hotkeys.MoveTabRight.Matches(k) && active != "":
			return UIEvent{Action: ActionMoveTab, ID: active, Step: 1}
		case r.hotkeys.PinTab.Matches(k) && active != "":
			return UIEvent{Action: ActionPinTab, ID: active}
		case r.hotkeys.DetachTab.Matches(k) && active != "":
			return UIEvent{Action: ActionDetachTab, ID: active}
		case r.hotkeys.ToggleGroup.Matches(k) && active != "":
			return UIEvent{Action: ActionGroupTab, ID: active}
		case r.hotkeys.ToggleTheme.Matches(k):
			return UIEvent{Action: ActionToggleTheme}
		case r.hotkeys.ToggleReduceMotion.Matches(k):
			return UIEvent{Action: ActionToggleReduceMotion}
		}
	}
	return UIEvent{}
}
