package ui

import (
	"time"

	"github.com/justyntemme/tabdeck/internal/debug"
)

// OffsetAnimator renders strip offsets. It receives target offsets from the
// drag controller and eases each item toward its target over Duration.
// Items marked as following the pointer jump straight to their target.
type OffsetAnimator struct {
	Duration     time.Duration
	ReduceMotion bool

	// Now is the clock used when targets change; tests replace it
	Now func() time.Time

	anims  map[string]*offsetAnim
	follow map[string]bool
}

type offsetAnim struct {
	from, to float32
	start    time.Time
}

// NewOffsetAnimator creates an animator easing over d
func NewOffsetAnimator(d time.Duration) *OffsetAnimator {
	return &OffsetAnimator{
		Duration: d,
		Now:      time.Now,
		anims:    make(map[string]*offsetAnim),
		follow:   make(map[string]bool),
	}
}

// SetOffset implements tabstrip.LayoutSink
func (a *OffsetAnimator) SetOffset(id string, offset float32) {
	now := a.Now()
	cur := a.Value(id, now)
	if a.ReduceMotion || a.Duration <= 0 || a.follow[id] {
		cur = offset
	}
	if offset == 0 && cur == 0 {
		delete(a.anims, id)
		return
	}
	a.anims[id] = &offsetAnim{from: cur, to: offset, start: now}
	debug.Log(debug.UI_LAYOUT, "offset %s: %.1f -> %.1f", id, cur, offset)
}

// Follow marks ids as tracking the pointer. Passing nothing clears the set.
func (a *OffsetAnimator) Follow(ids ...string) {
	a.follow = make(map[string]bool, len(ids))
	for _, id := range ids {
		a.follow[id] = true
	}
}

// Value returns the offset to draw id with at now
func (a *OffsetAnimator) Value(id string, now time.Time) float32 {
	an, ok := a.anims[id]
	if !ok {
		return 0
	}
	t := a.progress(an, now)
	return an.from + (an.to-an.from)*easeOutCubic(t)
}

// Animating reports whether any offset is still moving at now
func (a *OffsetAnimator) Animating(now time.Time) bool {
	for _, an := range a.anims {
		if an.from != an.to && a.progress(an, now) < 1 {
			return true
		}
	}
	return false
}

// Snap finishes every animation and forgets items at rest
func (a *OffsetAnimator) Snap() {
	for id, an := range a.anims {
		if an.to == 0 {
			delete(a.anims, id)
			continue
		}
		an.from = an.to
	}
}

// Clear drops every offset without animating
func (a *OffsetAnimator) Clear() {
	a.anims = make(map[string]*offsetAnim)
	a.follow = make(map[string]bool)
}

func (a *OffsetAnimator) progress(an *offsetAnim, now time.Time) float32 {
	if a.Duration <= 0 {
		return 1
	}
	t := float32(now.Sub(an.start)) / float32(a.Duration)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func easeOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}
