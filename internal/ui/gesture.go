package ui

import (
	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
)

// stripGesture handles both click and drag gestures over the whole strip.
//
// A press becomes a drag once the pointer travels dragSlop. Click events
// are processed first and only reported when no drag started, so both
// interactions work on the same area.
type stripGesture struct {
	click gesture.Click
	drag  gesture.Drag

	pressPos f32.Point // Where the pointer went down
	pos      f32.Point // Last known pointer position

	// pid tracks the pointer ID for coordinating click vs drag
	pid pointer.ID
	// dragStarted indicates drag threshold was exceeded
	dragStarted bool
}

// dragSlop is how far the pointer must travel before a press becomes a drag
const dragSlop = unit.Dp(4)

type gestureKind int

const (
	gestureClick gestureKind = iota
	gesturePress
	gestureDragStart
	gestureDragMove
	gestureRelease
	gestureCancel
)

// gestureEvent is one click or drag step in strip-local coordinates
type gestureEvent struct {
	Kind      gestureKind
	Position  f32.Point
	Modifiers key.Modifiers
	NumClicks int
}

// Dragging reports whether a drag is in progress
func (g *stripGesture) Dragging() bool {
	return g.drag.Dragging() && g.dragStarted
}

// Pos returns the last pointer position
func (g *stripGesture) Pos() f32.Point {
	return g.pos
}

// Update collects the gesture events of this frame. Events are delivered
// based on the previous frame's hit area.
func (g *stripGesture) Update(gtx layout.Context) []gestureEvent {
	if !gtx.Enabled() {
		return nil
	}
	var out []gestureEvent
	slop := float32(gtx.Dp(dragSlop))

	for {
		e, ok := g.click.Update(gtx.Source)
		if !ok {
			break
		}
		switch e.Kind {
		case gesture.KindClick:
			// Only report click if we didn't start a drag
			if !g.dragStarted {
				out = append(out, gestureEvent{
					Kind:      gestureClick,
					Position:  f32.Pt(float32(e.Position.X), float32(e.Position.Y)),
					Modifiers: e.Modifiers,
					NumClicks: e.NumClicks,
				})
			}
		case gesture.KindCancel:
			g.dragStarted = false
		}
	}

	for {
		e, ok := g.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch e.Kind {
		case pointer.Press:
			g.pressPos = e.Position
			g.pos = e.Position
			g.pid = e.PointerID
			g.dragStarted = false
			out = append(out, gestureEvent{Kind: gesturePress, Position: e.Position, Modifiers: e.Modifiers})
		case pointer.Drag:
			if e.PointerID != g.pid {
				continue
			}
			g.pos = e.Position
			kind := gestureDragMove
			if !g.dragStarted {
				d := e.Position.Sub(g.pressPos)
				if max(d.X, -d.X) < slop && max(d.Y, -d.Y) < slop {
					continue
				}
				g.dragStarted = true
				kind = gestureDragStart
			}
			out = append(out, gestureEvent{Kind: kind, Position: e.Position, Modifiers: e.Modifiers})
		case pointer.Release:
			if g.dragStarted {
				out = append(out, gestureEvent{Kind: gestureRelease, Position: e.Position, Modifiers: e.Modifiers})
			}
			g.dragStarted = false
		case pointer.Cancel:
			if g.dragStarted {
				out = append(out, gestureEvent{Kind: gestureCancel})
			}
			g.dragStarted = false
		}
	}
	return out
}

// Add registers the gesture handlers for the current clip area
func (g *stripGesture) Add(ops *op.Ops) {
	g.click.Add(ops)
	g.drag.Add(ops)
}
