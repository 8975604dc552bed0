package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastType indicates the severity/type of toast message
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast is a temporary notification message. Show may be called from any
// goroutine; Layout must be called from the frame loop.
type Toast struct {
	Message   string
	Type      ToastType
	Visible   bool
	ExpiresAt time.Time
	mu        sync.Mutex
}

// toastDuration is how long toasts are displayed
const toastDuration = 3 * time.Second

// Show displays a toast notification that auto-dismisses
func (t *Toast) Show(message string, toastType ToastType) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Message = message
	t.Type = toastType
	t.Visible = true
	t.ExpiresAt = time.Now().Add(toastDuration)
}

// ShowError is a convenience method for showing error toasts
func (t *Toast) ShowError(message string) {
	t.Show(message, ToastError)
}

// snapshot hides an expired toast and returns what to draw
func (t *Toast) snapshot(now time.Time) (message string, toastType ToastType, expiresAt time.Time, visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Visible && now.After(t.ExpiresAt) {
		t.Visible = false
	}
	return t.Message, t.Type, t.ExpiresAt, t.Visible
}

// Layout renders the toast at the bottom of the area
func (t *Toast) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	message, toastType, expiresAt, visible := t.snapshot(gtx.Now)
	if !visible || message == "" {
		return layout.Dimensions{}
	}

	// Schedule redraw when toast should expire
	gtx.Execute(op.InvalidateCmd{At: expiresAt})

	// Toast colors based on type
	var bgColor, textColor color.NRGBA
	switch toastType {
	case ToastError:
		bgColor = color.NRGBA{R: 200, G: 50, B: 50, A: 240}
		textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	case ToastWarning:
		bgColor = color.NRGBA{R: 220, G: 160, B: 40, A: 240}
		textColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	case ToastSuccess:
		bgColor = color.NRGBA{R: 50, G: 160, B: 80, A: 240}
		textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	default: // ToastInfo
		bgColor = color.NRGBA{R: 60, G: 60, B: 60, A: 240}
		textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	// Position toast at bottom center
	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Bottom: unit.Dp(20),
			Left:   unit.Dp(20),
			Right:  unit.Dp(20),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			// Center the toast
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				// Limit max width
				gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(500)))

				padding := unit.Dp(12)
				cornerRadius := unit.Dp(8)

				// Measure text first
				macro := op.Record(gtx.Ops)
				textDims := layout.Inset{
					Top:    padding,
					Bottom: padding,
					Left:   unit.Dp(16),
					Right:  unit.Dp(16),
				}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Body1(th, message)
					label.Color = textColor
					return label.Layout(gtx)
				})
				call := macro.Stop()

				// Draw background
				rr := gtx.Dp(cornerRadius)
				rect := image.Rect(0, 0, textDims.Size.X, textDims.Size.Y)
				paint.FillShape(gtx.Ops, bgColor, clip.RRect{
					Rect: rect,
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}.Op(gtx.Ops))

				// Draw text on top
				call.Add(gtx.Ops)

				return textDims
			})
		})
	})
}
