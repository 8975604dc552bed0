package tabstrip

import "time"

// Advisory is a grouping hint layered on top of a drop index
type Advisory int

const (
	AdvisoryNone Advisory = iota
	AdvisoryCreateGroup
	AdvisoryJoinGroup
)

func (a Advisory) String() string {
	switch a {
	case AdvisoryCreateGroup:
		return "create-group"
	case AdvisoryJoinGroup:
		return "join-group"
	default:
		return "none"
	}
}

// Thresholds tune the resolver. They come from user configuration and are
// clamped before use, so any value is safe to pass.
type Thresholds struct {
	// MoveOver is the overlap fraction at which the dragged block passes a
	// sibling. Clamped to [0.5, 0.95].
	MoveOver float32
	// GroupOverlap is the overlap fraction at which hovering a sibling
	// suggests grouping. Clamped to [0, MoveOver).
	GroupOverlap float32
	// GroupDelay is how long a grouping suggestion must stay unchanged
	// before it becomes active.
	GroupDelay time.Duration
}

// DefaultThresholds returns the stock tuning
func DefaultThresholds() Thresholds {
	return Thresholds{
		MoveOver:     0.5,
		GroupOverlap: 0.25,
		GroupDelay:   350 * time.Millisecond,
	}
}

// Normalized returns t with every field clamped into its legal range
func (t Thresholds) Normalized() Thresholds {
	if t.MoveOver < 0.5 || t.MoveOver != t.MoveOver {
		t.MoveOver = 0.5
	}
	if t.MoveOver > 0.95 {
		t.MoveOver = 0.95
	}
	if t.GroupOverlap < 0 || t.GroupOverlap != t.GroupOverlap {
		t.GroupOverlap = 0
	}
	if t.GroupOverlap >= t.MoveOver {
		t.GroupOverlap = t.MoveOver / 2
	}
	if t.GroupDelay < 0 {
		t.GroupDelay = 0
	}
	return t
}

// Resolution is where the dragged block would land if released now.
type Resolution struct {
	// Index is the visible element index the first dragged element would
	// occupy after the drop.
	Index int
	// Slot is the insertion point among the non-dragged siblings of the
	// block's domain.
	Slot int
	// Target is the sibling the block is dropped next to, nil when the
	// domain has no siblings.
	Target Item
	// Before reports whether the block goes before Target.
	Before bool
	// Group is the group plain tabs would join at Slot.
	Group string

	Advisory       Advisory
	AdvisoryTarget Item
	AdvisoryBefore bool
}

// Query is the input of Resolve. Sibling spans are baseline positions:
// the layout with the dragged block gathered at slot Home.
type Query struct {
	Siblings []Slot
	Block    Span // dragged block at its current position
	Home     int
	Prev     int
	Forward  bool
	Pointer  float32
	Offset   int // visible elements before the domain

	GroupDrag bool // the block is a whole group
	Pinned    bool // the block lives in the pinned domain
}

// Resolve maps the dragged block's position to an insertion point. It never
// fails: degenerate input yields "append at end" of the domain.
func Resolve(q Query, th Thresholds) Resolution {
	th = th.Normalized()
	m := len(q.Siblings)
	if m == 0 {
		return Resolution{Index: q.Offset}
	}
	home := clampInt(q.Home, 0, m)
	prev := clampInt(q.Prev, 0, m)
	size := q.Block.Size

	ref := q.Block.Pos
	if q.Forward {
		ref = q.Block.End()
	}
	// -1 when the reference edge is over the gap itself
	found := locate(q.Siblings, home, prev, size, ref)

	slot := prev
	switch {
	case q.Pointer < q.Siblings[0].Span.Pos:
		slot = 0
	case q.Pointer > q.Siblings[m-1].Span.End():
		slot = m
	case found >= 0:
		cur := shiftedSpan(q.Siblings[found].Span, found, home, prev, size)
		over := greatestOverlap(q.Block.Pos, size, cur.Pos, cur.Size)
		pass := over > th.MoveOver
		if Shift(found, home, prev, size) != 0 {
			// A sibling that already moved aside only moves back once the
			// block covers it completely, so passing and reverting are
			// MoveOver block sizes apart.
			pass = over >= 1
		}
		if found >= prev {
			slot = found
			if pass {
				slot = found + 1
			}
		} else {
			slot = found + 1
			if pass {
				slot = found
			}
		}
		// The slot only follows the direction of travel
		if q.Forward && slot < prev {
			slot = prev
		}
		if !q.Forward && slot > prev {
			slot = prev
		}
	}

	if q.GroupDrag {
		slot = snapOutOfGroup(q.Siblings, slot, q.Forward)
	}

	res := resolutionAt(q.Siblings, slot, q.Offset)
	if q.GroupDrag || q.Pinned {
		res.Group = ""
	}

	if found >= 0 && !q.GroupDrag && !q.Pinned {
		sib := q.Siblings[found]
		cur := shiftedSpan(sib.Span, found, home, slot, size)
		if greatestOverlap(q.Block.Pos, size, cur.Pos, cur.Size) > th.GroupOverlap {
			switch v := sib.Item.(type) {
			case Tab:
				if v.GroupID == "" {
					res.Advisory = AdvisoryCreateGroup
				}
			case GroupLabel:
				if v.Collapsed {
					res.Advisory = AdvisoryJoinGroup
				}
			case SplitView:
			}
			if res.Advisory != AdvisoryNone {
				res.AdvisoryTarget = sib.Item
				res.AdvisoryBefore = q.Block.Pos < cur.Pos
			}
		}
	}
	return res
}

// resolutionAt builds the base resolution for an insertion slot
func resolutionAt(sibs []Slot, slot, offset int) Resolution {
	m := len(sibs)
	res := Resolution{Index: offset + slot, Slot: slot}
	if m == 0 {
		return res
	}
	if slot < m {
		res.Target = sibs[slot].Item
		res.Before = true
	} else {
		res.Target = sibs[m-1].Item
	}
	res.Group = groupAt(sibs, slot)
	return res
}

// groupAt returns the group an item inserted at slot lands inside of
func groupAt(sibs []Slot, slot int) string {
	if slot <= 0 || slot >= len(sibs) {
		return ""
	}
	next := sibs[slot].Item
	if Classify(next) == KindGroupLabel {
		return ""
	}
	g := GroupOf(next)
	if g != "" && GroupOf(sibs[slot-1].Item) == g {
		return g
	}
	return ""
}

// snapOutOfGroup moves a slot that falls inside another group to the
// group's edge: past its last member moving forward, before its label
// moving backward.
func snapOutOfGroup(sibs []Slot, slot int, forward bool) int {
	g := groupAt(sibs, slot)
	if g == "" {
		return slot
	}
	if forward {
		for slot < len(sibs) && GroupOf(sibs[slot].Item) == g {
			slot++
		}
		return slot
	}
	for slot > 0 && GroupOf(sibs[slot-1].Item) == g {
		slot--
	}
	return slot
}

// locate binary-searches the siblings, positioned as currently reflowed for
// prev, for the one whose span contains p. Returns -1 when p is in the gap.
func locate(sibs []Slot, home, prev int, size, p float32) int {
	lo, hi := 0, len(sibs)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		s := shiftedSpan(sibs[mid].Span, mid, home, prev, size)
		switch {
		case s.Pos > p:
			hi = mid - 1
		case s.End() < p:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}

// Shift is the reflow offset of sibling i when the block that started at
// slot home is shown at slot.
func Shift(i, home, slot int, size float32) float32 {
	switch {
	case i >= home && i < slot:
		return -size
	case i >= slot && i < home:
		return size
	default:
		return 0
	}
}

func shiftedSpan(s Span, i, home, slot int, size float32) Span {
	s.Pos += Shift(i, home, slot, size)
	return s
}

// greatestOverlap returns the larger fraction of either span covered by
// the other, in [0, 1].
func greatestOverlap(p1, s1, p2, s2 float32) float32 {
	var overlap float32
	if p1 < p2 {
		overlap = p1 + s1 - p2
	} else {
		overlap = p2 + s2 - p1
	}
	if overlap <= 0 || s1 <= 0 || s2 <= 0 {
		return 0
	}
	f := overlap / s1
	if g := overlap / s2; g > f {
		f = g
	}
	if f > 1 {
		f = 1
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
