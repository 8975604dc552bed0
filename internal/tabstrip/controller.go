package tabstrip

import (
	"errors"
	"fmt"
	"time"

	"github.com/justyntemme/tabdeck/internal/debug"
)

var (
	// ErrDragActive is returned by Start while another drag is in progress
	ErrDragActive = errors.New("tabstrip: drag already in progress")
	// ErrNotDragging is returned by Drop when no drag is in progress
	ErrNotDragging = errors.New("tabstrip: no drag in progress")
	// ErrUnknownItem is returned when the anchor is not in the strip
	ErrUnknownItem = errors.New("tabstrip: unknown item")
)

// State is the lifecycle state of a Controller
type State int

const (
	Idle State = iota
	Dragging
	Committing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// Geometry supplies the visible strip elements with their current layout
type Geometry interface {
	Slots() []Slot
}

// GeometryFunc adapts a function to Geometry
type GeometryFunc func() []Slot

func (f GeometryFunc) Slots() []Slot { return f() }

// Controller runs drag gestures for one strip. It is not safe for
// concurrent use; call it from the UI event loop.
type Controller struct {
	col   *Collection
	geom  Geometry
	anim  *Animator
	th    Thresholds
	state State
	sess  *Session
}

// NewController creates a controller for the strip showing col
func NewController(col *Collection, geom Geometry, sink LayoutSink, th Thresholds) *Controller {
	return &Controller{
		col:  col,
		geom: geom,
		anim: NewAnimator(sink),
		th:   th.Normalized(),
	}
}

// SetThresholds replaces the tuning. A drag in progress keeps the values it
// started with.
func (c *Controller) SetThresholds(th Thresholds) {
	c.th = th.Normalized()
}

// Thresholds returns the tuning in use
func (c *Controller) Thresholds() Thresholds { return c.th }

// State returns the lifecycle state
func (c *Controller) State() State { return c.state }

// Active reports whether a drag is in progress
func (c *Controller) Active() bool { return c.state != Idle }

// Session returns the active session, or nil
func (c *Controller) Session() *Session { return c.sess }

// Offset returns the visual offset currently applied to id
func (c *Controller) Offset(id string) float32 { return c.anim.Offset(id) }

// Start begins dragging anchorID. selection lists other items to drag
// along; members outside the anchor's pinned/unpinned region are ignored.
func (c *Controller) Start(anchorID string, pointer float32, selection []string) error {
	if c.state != Idle {
		return ErrDragActive
	}
	slots := c.geom.Slots()
	anchor := -1
	for i, sl := range slots {
		if sl.Item.ItemID() == anchorID {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownItem, anchorID)
	}

	c.sess = newSession(slots, anchor, selection, pointer)
	c.sess.th = c.th
	c.state = Dragging
	// Gather a scattered selection next to the anchor
	c.anim.Apply(c.sess.offsets())
	debug.Log(debug.DRAG, "Start: anchor=%s moving=%v home=%d pinned=%v",
		anchorID, c.sess.MovingIDs(), c.sess.HomeIndex(), c.sess.Pinned)
	return nil
}

// Move feeds a pointer coordinate along the strip axis and returns the
// current resolution. It does nothing when idle or when the pointer has
// not moved.
func (c *Controller) Move(pointer float32, now time.Time) Resolution {
	if c.state != Dragging {
		return Resolution{}
	}
	s := c.sess
	if pointer == s.lastPointer {
		return s.Result
	}

	res := Resolve(s.follow(pointer), s.th)
	c.trackAdvisory(&res, now)
	s.Result = res
	c.anim.Apply(s.offsets())

	debug.Log(debug.DRAG_MOVE, "Move: pointer=%.1f translate=%.1f forward=%v index=%d advisory=%s",
		pointer, s.translate, s.forward, res.Index, res.Advisory)
	return res
}

// trackAdvisory debounces the grouping suggestion: a candidate becomes
// active once it has been reported unchanged for GroupDelay.
func (c *Controller) trackAdvisory(res *Resolution, now time.Time) {
	s := c.sess
	id := ""
	if res.AdvisoryTarget != nil {
		id = res.AdvisoryTarget.ItemID()
	}
	if res.Advisory != s.candidate || id != s.candidateID {
		s.candidate = res.Advisory
		s.candidateID = id
		s.candidateSince = now
		s.candidateTarget = res.AdvisoryTarget
		s.candidateBefore = res.AdvisoryBefore
		s.advisoryActive = res.Advisory != AdvisoryNone && s.th.GroupDelay == 0
	}
	if !s.advisoryActive {
		res.Advisory = AdvisoryNone
		res.AdvisoryTarget = nil
		res.AdvisoryBefore = false
	}
}

// Deadline returns when a pending grouping suggestion becomes active
func (c *Controller) Deadline() (time.Time, bool) {
	if c.state != Dragging || c.sess.candidate == AdvisoryNone || c.sess.advisoryActive {
		return time.Time{}, false
	}
	return c.sess.candidateSince.Add(c.sess.th.GroupDelay), true
}

// Tick activates a pending grouping suggestion whose deadline has passed.
// It reports whether the resolution changed.
func (c *Controller) Tick(now time.Time) bool {
	deadline, ok := c.Deadline()
	if !ok || now.Before(deadline) {
		return false
	}
	s := c.sess
	s.advisoryActive = true
	s.Result.Advisory = s.candidate
	s.Result.AdvisoryTarget = s.candidateTarget
	s.Result.AdvisoryBefore = s.candidateBefore
	debug.Log(debug.DRAG, "Advisory active: %s on %s", s.candidate, s.candidateID)
	return true
}

// Drop commits the current resolution to the collection and ends the drag.
// The strip is returned to neutral whether or not the commit succeeds.
func (c *Controller) Drop(target DropTarget, copyItems bool) (Outcome, error) {
	if c.state != Dragging {
		return Outcome{}, ErrNotDragging
	}
	c.state = Committing
	s := c.sess
	defer c.Cleanup()

	moving := make([]Item, len(s.Moving))
	for i, sl := range s.Moving {
		moving[i] = sl.Item
	}
	out, err := Commit(c.col, Drop{
		Result:    s.Result,
		Moving:    moving,
		Copy:      copyItems,
		Target:    target,
		HomeIndex: s.HomeIndex(),
	})
	if err != nil {
		debug.Log(debug.DRAG, "Drop failed: %v", err)
		return out, err
	}
	debug.Log(debug.DRAG, "Drop: target=%s outcome=%s index=%d", target, out.Kind, s.Result.Index)
	return out, nil
}

// Cancel abandons the drag without touching the collection
func (c *Controller) Cancel() {
	if c.state == Idle {
		return
	}
	debug.Log(debug.DRAG, "Cancel")
	c.Cleanup()
}

// Cleanup returns every element to neutral and discards the session. It is
// safe to call at any time.
func (c *Controller) Cleanup() {
	c.anim.Reset()
	c.sess = nil
	c.state = Idle
}
