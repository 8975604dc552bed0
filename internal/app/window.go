package app

import (
	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/tabdeck/internal/config"
	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/platform"
	"github.com/justyntemme/tabdeck/internal/store"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
	"github.com/justyntemme/tabdeck/internal/ui"
)

// Window is one OS window with its own strip. All fields are owned by the
// window's event loop goroutine except configs.
type Window struct {
	o      *Orchestrator
	id     string
	window *app.Window
	col    *tabstrip.Collection
	ctl    *tabstrip.Controller
	ui     *ui.Renderer
	cfg    config.Config
	title  string

	configs chan config.Config // Reloaded configs waiting for the next frame
	drops   chan externalDrop  // Files dropped from the desktop
	view    uintptr            // Native view handle accepting drops
}

func newWindow(o *Orchestrator, id string, col *tabstrip.Collection) *Window {
	r := ui.NewRenderer()
	w := &Window{
		o:       o,
		id:      id,
		window:  new(app.Window),
		col:     col,
		ui:      r,
		configs: make(chan config.Config, 1),
		drops:   make(chan externalDrop, 4),
	}
	r.Strip.Previews = ui.NewPreviewCache(64, 160)
	r.Strip.Previews.OnLoad = func(string) { w.window.Invalidate() }

	cfg := o.config.Get()
	w.ctl = tabstrip.NewController(col, r.Strip, r.Offsets, cfg.DragDrop.Thresholds())
	w.applyConfig(cfg)
	if col.Active() == "" {
		for _, it := range col.Items() {
			if tabstrip.Classify(it) != tabstrip.KindGroupLabel {
				col.SetActive(it.ItemID())
				break
			}
		}
	}
	return w
}

func (w *Window) run() error {
	w.title = w.windowTitle()
	w.window.Option(app.Title(w.title), app.Size(unit.Dp(960), unit.Dp(600)))

	var ops op.Ops
	for {
		switch e := w.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.ConfigEvent:
			if e.Config.Focused {
				w.o.send(store.Request{Op: store.SaveSetting, Key: focusedWindowKey, Value: w.id})
			}
		case app.FrameEvent:
			select {
			case cfg := <-w.configs:
				w.applyConfig(cfg)
			default:
			}
			w.drainDrops()

			gtx := app.NewContext(&ops, e)
			evt := w.ui.Layout(gtx, w.col, w.ctl)
			if evt.Action != ui.ActionNone {
				debug.Log(debug.UI_EVENT, "Window %s action=%d id=%s outcome=%s", w.id, evt.Action, evt.ID, evt.Outcome.Kind)
			}
			w.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		default:
			w.handlePlatformEvent(e)
		}
	}
}

// pushConfig hands a reloaded config to the window. Only the newest one is
// kept. Safe to call from any goroutine.
func (w *Window) pushConfig(cfg config.Config) {
	select {
	case <-w.configs:
	default:
	}
	select {
	case w.configs <- cfg:
	default:
	}
	w.window.Invalidate()
}

// applyConfig pushes settings into the strip. New thresholds take effect
// on the next drag.
func (w *Window) applyConfig(cfg config.Config) {
	w.cfg = cfg
	w.ctl.SetThresholds(cfg.DragDrop.Thresholds())
	w.ui.ApplyConfig(cfg.UI, cfg.DragDrop)
	w.ui.SetHotkeys(cfg.Hotkeys)
	if err := w.o.config.ParseError(); err != nil {
		w.ui.SetConfigError(err.Error())
	} else {
		w.ui.SetConfigError("")
	}
}

func (w *Window) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionNone:
		return
	case ui.ActionSwitchTab:
		w.switchTab(evt.ID)
	case ui.ActionOpenTab:
		w.openExternally(evt.ID)
	case ui.ActionCloseTab:
		w.closeTab(evt.ID)
	case ui.ActionNewTab:
		w.createNewTab(w.o.defaultPath())
	case ui.ActionNextTab:
		w.cycleTab(1)
	case ui.ActionPrevTab:
		w.cycleTab(-1)
	case ui.ActionToggleGroup:
		w.toggleCollapsed(evt.ID)
	case ui.ActionDropped:
		w.applyOutcome("drop", evt.Outcome, evt.Err)
	case ui.ActionDragCancelled:
		debug.Log(debug.DRAG, "Drag cancelled in window %s", w.id)
	case ui.ActionMoveTab:
		out, err := tabstrip.Nudge(w.col, evt.ID, evt.Step)
		w.applyOutcome("move", out, err)
	case ui.ActionPinTab:
		w.togglePin(evt.ID)
	case ui.ActionDetachTab:
		w.detach(evt.ID)
	case ui.ActionGroupTab:
		out, err := tabstrip.ToggleGroup(w.col, evt.ID)
		w.applyOutcome("group", out, err)
	case ui.ActionToggleTheme:
		w.toggleTheme()
	case ui.ActionToggleReduceMotion:
		w.toggleReduceMotion()
	case ui.ActionExternalDrop:
		w.applyOutcome("open", evt.Outcome, evt.Err)
	}
	w.updateTitle()
	w.window.Invalidate()
}

// save persists the strip. Called after every mutation.
func (w *Window) save() {
	w.o.send(store.Request{Op: store.SaveSession, Session: snapshot(w.id, w.col)})
}

func (w *Window) windowTitle() string {
	if it, ok := w.col.Get(w.col.Active()); ok {
		switch v := it.(type) {
		case tabstrip.Tab:
			return v.Title + " - tabdeck"
		case tabstrip.SplitView:
			return v.Left.Title + " | " + v.Right.Title + " - tabdeck"
		}
	}
	return "tabdeck"
}

func (w *Window) updateTitle() {
	if t := w.windowTitle(); t != w.title {
		w.title = t
		w.window.Option(app.Title(t))
	}
}

// tabCount returns the number of tab-like items, labels excluded
func (w *Window) tabCount() int {
	n := 0
	for _, it := range w.col.Items() {
		if tabstrip.Classify(it) != tabstrip.KindGroupLabel {
			n++
		}
	}
	return n
}

func (w *Window) close() {
	if w.view != 0 {
		platform.CleanupExternalDrop(w.view)
		w.view = 0
	}
	w.ctl.Cleanup()
	w.ui.Strip.Previews.Stop()
}
