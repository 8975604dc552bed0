package ui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/tabdeck/internal/config"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// Renderer draws one window: the tab strip, the active tab's page and
// transient notifications.
type Renderer struct {
	Theme    *material.Theme
	Strip    *TabStrip
	Offsets  *OffsetAnimator
	Toast    Toast
	DarkMode bool

	// ConfigError is shown in a banner until the config file is fixed
	ConfigError string

	hotkeys *config.HotkeyMatcher
	keyTag  bool // Address used as the keyboard focus tag
	focused bool
	bgClick widget.Clickable
}

// NewRenderer creates a renderer with default strip settings
func NewRenderer() *Renderer {
	th := material.NewTheme()
	offsets := NewOffsetAnimator(config.DefaultConfig().DragDrop.Animation())
	r := &Renderer{
		Theme:   th,
		Offsets: offsets,
		Strip:   NewTabStrip(th, offsets),
		hotkeys: config.NewHotkeyMatcher(config.DefaultHotkeys()),
	}
	return r
}

// Layout draws the window and returns the user's action, if any
func (r *Renderer) Layout(gtx layout.Context, col *tabstrip.Collection, ctl *tabstrip.Controller) UIEvent {
	paint.FillShape(gtx.Ops, colWhite, clip.Rect{Max: gtx.Constraints.Max}.Op())

	// ===== KEYBOARD FOCUS =====
	keyTag := &r.keyTag
	event.Op(gtx.Ops, keyTag)
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: keyTag})
		r.focused = true
	}
	eventOut := r.processGlobalInput(gtx, col, ctl, keyTag)

	if r.bgClick.Clicked(gtx) {
		r.Strip.ClearSelection()
		gtx.Execute(key.FocusCmd{Tag: keyTag})
	}

	axis := layout.Vertical
	if r.Strip.Vertical {
		axis = layout.Horizontal
	}
	layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: axis}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutConfigBanner(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.Strip.Layout(gtx, col, ctl, &eventOut)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return r.bgClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return r.layoutPage(gtx, col)
					})
				}),
			)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return r.Toast.Layout(gtx, r.Theme)
		}),
	)
	return eventOut
}

// layoutPage shows what the active element points at
func (r *Renderer) layoutPage(gtx layout.Context, col *tabstrip.Collection) layout.Dimensions {
	title, path := "No tab", ""
	if it, ok := col.Get(col.Active()); ok {
		switch v := it.(type) {
		case tabstrip.Tab:
			title, path = tabTitle(v), v.Path
		case tabstrip.SplitView:
			title = tabTitle(v.Left) + " | " + tabTitle(v.Right)
			path = v.Left.Path + "  " + v.Right.Path
		}
	}
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.H5(r.Theme, title)
				lbl.Color = colBlack
				return lbl.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, path)
				lbl.Color = colGray
				return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, lbl.Layout)
			}),
		)
	})
}

func (r *Renderer) layoutConfigBanner(gtx layout.Context) layout.Dimensions {
	if r.ConfigError == "" {
		return layout.Dimensions{}
	}
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(r.Theme, "Config error, using defaults: "+r.ConfigError)
		lbl.Color = colWhite
		return lbl.Layout(gtx)
	})
	call := macro.Stop()
	size := image.Pt(gtx.Constraints.Max.X, dims.Size.Y)
	paint.FillShape(gtx.Ops, groupColor("red"), clip.Rect{Max: size}.Op())
	call.Add(gtx.Ops)
	return layout.Dimensions{Size: size}
}
