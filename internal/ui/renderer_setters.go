package ui

import (
	"gioui.org/unit"

	"github.com/justyntemme/tabdeck/internal/config"
	"github.com/justyntemme/tabdeck/internal/debug"
)

// Configuration setters - methods to update renderer state from orchestrator

func (r *Renderer) SetDarkMode(dark bool) {
	r.DarkMode = dark
	applyPalette(dark)
	r.Theme.Palette.Bg = colWhite
	r.Theme.Palette.Fg = colBlack
	r.Theme.Palette.ContrastBg = colAccent
	r.Theme.Palette.ContrastFg = colWhite
}

// SetConfigError sets the config error message to display in the banner
func (r *Renderer) SetConfigError(err string) {
	r.ConfigError = err
}

// SetHotkeys configures the keyboard shortcuts from config
func (r *Renderer) SetHotkeys(cfg config.HotkeysConfig) {
	r.hotkeys = config.NewHotkeyMatcher(cfg)
	debug.Log(debug.HOTKEY, "Hotkeys configured: NewTab=%s, CloseTab=%s, MoveTabLeft=%s, MoveTabRight=%s",
		r.hotkeys.NewTab.String(), r.hotkeys.CloseTab.String(),
		r.hotkeys.MoveTabLeft.String(), r.hotkeys.MoveTabRight.String())
}

// ApplyConfig pushes strip sizing and drag settings into the strip and
// its offset animator
func (r *Renderer) ApplyConfig(ui config.UIConfig, dd config.DragDropConfig) {
	s := r.Strip
	s.Vertical = ui.Orientation == "vertical"
	s.TabMinWidth = unit.Dp(ui.TabMinWidth)
	s.TabMaxWidth = unit.Dp(ui.TabMaxWidth)
	s.PinnedTabWidth = unit.Dp(ui.PinnedTabWidth)
	s.DetachDistance = unit.Dp(dd.DetachDistanceDp)
	s.AllowDetach = dd.AllowDetach
	s.DragToPin = dd.DragToPin

	r.Offsets.Duration = dd.Animation()
	r.Offsets.ReduceMotion = ui.ReduceMotion
	r.SetDarkMode(ui.Theme == "dark")
	debug.Log(debug.CONFIG, "Strip config applied: vertical=%v min=%d max=%d detach=%v",
		s.Vertical, ui.TabMinWidth, ui.TabMaxWidth, dd.AllowDetach)
}
