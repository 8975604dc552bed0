package tabstrip

// LayoutSink receives cosmetic offsets along the strip axis. An offset of
// zero puts the item back at its laid-out position.
type LayoutSink interface {
	SetOffset(id string, offset float32)
}

// Animator pushes reflow offsets to a LayoutSink. It remembers what it has
// applied so repeated calls only touch items whose offset changed, and so
// Reset can return every item to neutral.
type Animator struct {
	sink    LayoutSink
	applied map[string]float32
}

// NewAnimator creates an animator writing to sink
func NewAnimator(sink LayoutSink) *Animator {
	return &Animator{sink: sink, applied: make(map[string]float32)}
}

// Apply makes the sink's offsets equal to targets. Items missing from
// targets are returned to zero first.
func (a *Animator) Apply(targets map[string]float32) {
	for id := range a.applied {
		if targets[id] == 0 {
			a.sink.SetOffset(id, 0)
			delete(a.applied, id)
		}
	}
	for id, off := range targets {
		if off == 0 {
			continue
		}
		if cur, ok := a.applied[id]; ok && cur == off {
			continue
		}
		a.sink.SetOffset(id, off)
		a.applied[id] = off
	}
}

// Offset returns the offset currently applied to id
func (a *Animator) Offset(id string) float32 {
	return a.applied[id]
}

// Applied returns the number of items with a non-zero offset
func (a *Animator) Applied() int {
	return len(a.applied)
}

// Reset clears every offset this animator applied
func (a *Animator) Reset() {
	for id := range a.applied {
		a.sink.SetOffset(id, 0)
	}
	a.applied = make(map[string]float32)
}
