package tabstrip

import (
	"sort"
	"time"
)

// Session is the state of one drag gesture. It is created by
// Controller.Start and discarded by Drop or Cancel.
type Session struct {
	// Moving holds the dragged elements, anchor first
	Moving []Slot
	// Siblings are the non-dragged elements of the anchor's domain with
	// baseline spans
	Siblings []Slot

	Pinned    bool
	GroupDrag bool

	th Thresholds // tuning captured at Start

	home      int  // slot of the block at drag start
	offset    int  // visible elements before the domain
	blockHome Span // block extent at drag start
	grab      float32
	minPos    float32
	maxPos    float32

	movingBase  map[string]float32 // gathered position minus laid-out position
	siblingBase []float32

	translate   float32
	lastPointer float32
	forward     bool

	Result Resolution

	candidate       Advisory
	candidateID     string
	candidateSince  time.Time
	candidateTarget Item
	candidateBefore bool
	advisoryActive  bool
}

// newSession captures the baseline for dragging anchor (an index into
// slots) together with the selected IDs.
func newSession(slots []Slot, anchor int, selection []string, pointer float32) *Session {
	a := slots[anchor]
	s := &Session{
		Pinned:      IsPinned(a.Item),
		GroupDrag:   Classify(a.Item) == KindGroupLabel,
		lastPointer: pointer,
		movingBase:  make(map[string]float32),
	}

	selected := make(map[string]bool, len(selection))
	for _, id := range selection {
		selected[id] = true
	}

	var domain []Slot
	for _, sl := range slots {
		if IsPinned(sl.Item) == s.Pinned {
			domain = append(domain, sl)
		} else if !s.Pinned {
			s.offset++
		}
	}

	isMoving := func(sl Slot) bool {
		if sl.Index == a.Index {
			return true
		}
		if s.GroupDrag {
			return GroupOf(sl.Item) == GroupOf(a.Item)
		}
		return selected[sl.Item.ItemID()] && Classify(sl.Item) != KindGroupLabel
	}

	var ordered []Slot
	for _, sl := range domain {
		if isMoving(sl) {
			ordered = append(ordered, sl)
		} else {
			s.Siblings = append(s.Siblings, sl)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	s.Moving = append(s.Moving, a)
	for _, sl := range ordered {
		if sl.Index != a.Index {
			s.Moving = append(s.Moving, sl)
		}
	}

	// Block extent: moving elements packed around the anchor
	var size, before float32
	for _, sl := range ordered {
		size += sl.Span.Size
		if sl.Index < a.Index {
			before += sl.Span.Size
		}
	}
	s.blockHome = Span{Pos: a.Span.Pos - before, Size: size}
	cursor := s.blockHome.Pos
	for _, sl := range ordered {
		s.movingBase[sl.Item.ItemID()] = cursor - sl.Span.Pos
		cursor += sl.Span.Size
	}

	for _, sib := range s.Siblings {
		if sib.Index < a.Index {
			s.home++
		}
	}

	// Baseline sibling spans: as laid out, minus moving elements that were
	// in front of them, plus the block when they sit after it.
	s.siblingBase = make([]float32, len(s.Siblings))
	for i := range s.Siblings {
		var ahead float32
		for _, sl := range ordered {
			if sl.Index < s.Siblings[i].Index {
				ahead += sl.Span.Size
			}
		}
		base := -ahead
		if i >= s.home {
			base += size
		}
		s.siblingBase[i] = base
		s.Siblings[i].Span.Pos += base
	}

	if len(domain) > 0 {
		s.minPos = domain[0].Span.Pos
		s.maxPos = domain[len(domain)-1].Span.End() - size
		if s.maxPos < s.minPos {
			s.maxPos = s.minPos
		}
	}
	s.grab = pointer - s.blockHome.Pos
	s.Result = resolutionAt(s.Siblings, s.home, s.offset)
	if s.GroupDrag || s.Pinned {
		s.Result.Group = ""
	}
	return s
}

// HomeIndex is the visible index of the block when the drag started
func (s *Session) HomeIndex() int { return s.offset + s.home }

// Translate is the block's current displacement from its start position
func (s *Session) Translate() float32 { return s.translate }

// Forward reports the last direction of travel
func (s *Session) Forward() bool { return s.forward }

// Block returns the dragged block's current extent
func (s *Session) Block() Span {
	b := s.blockHome
	b.Pos += s.translate
	return b
}

// MovingIDs returns the IDs of the dragged elements, anchor first
func (s *Session) MovingIDs() []string {
	ids := make([]string, len(s.Moving))
	for i, sl := range s.Moving {
		ids[i] = sl.Item.ItemID()
	}
	return ids
}

// Anchor returns the element the gesture started on
func (s *Session) Anchor() Item { return s.Moving[0].Item }

// follow updates the block position from a pointer coordinate and returns
// the resolver query for it.
func (s *Session) follow(pointer float32) Query {
	s.forward = pointer > s.lastPointer
	s.lastPointer = pointer

	pos := pointer - s.grab
	if pos < s.minPos {
		pos = s.minPos
	}
	if pos > s.maxPos {
		pos = s.maxPos
	}
	s.translate = pos - s.blockHome.Pos

	return Query{
		Siblings:  s.Siblings,
		Block:     s.Block(),
		Home:      s.home,
		Prev:      s.Result.Slot,
		Forward:   s.forward,
		Pointer:   pointer,
		Offset:    s.offset,
		GroupDrag: s.GroupDrag,
		Pinned:    s.Pinned,
	}
}

// offsets returns the visual offset of every element for the current
// translation and resolution. Zero offsets are omitted.
func (s *Session) offsets() map[string]float32 {
	out := make(map[string]float32, len(s.Moving)+len(s.Siblings))
	for _, sl := range s.Moving {
		id := sl.Item.ItemID()
		if off := s.movingBase[id] + s.translate; off != 0 {
			out[id] = off
		}
	}
	size := s.blockHome.Size
	for i, sib := range s.Siblings {
		if off := s.siblingBase[i] + Shift(i, s.home, s.Result.Slot, size); off != 0 {
			out[sib.Item.ItemID()] = off
		}
	}
	return out
}
