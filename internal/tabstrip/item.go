// Package tabstrip implements the drag-and-drop model of a tab strip:
// the ordered collection of strip items, the drop-index resolver, the
// reflow animator, the drop committer and the drag controller that ties
// them together.
//
// Nothing in this package knows about a UI toolkit. Geometry comes in as
// Spans along the strip axis and visual offsets go out through a LayoutSink.
package tabstrip

// Kind classifies a strip item
type Kind int

const (
	KindTab Kind = iota
	KindGroupLabel
	KindSplitView
)

func (k Kind) String() string {
	switch k {
	case KindTab:
		return "tab"
	case KindGroupLabel:
		return "group"
	case KindSplitView:
		return "split"
	default:
		return "unknown"
	}
}

// Item is one orderable element of a strip. The set of implementations is
// closed: Tab, GroupLabel and SplitView.
type Item interface {
	ItemID() string
	stripItem()
}

// Tab is a single tab pointing at a path
type Tab struct {
	ID      string
	Title   string
	Path    string
	Pinned  bool
	GroupID string // Empty when ungrouped
}

// GroupLabel heads a tab group. Member tabs follow it in the collection.
type GroupLabel struct {
	GroupID   string
	Name      string
	Color     string
	Collapsed bool
}

// SplitView shows two tabs side by side as a single strip element
type SplitView struct {
	ID      string
	Left    Tab
	Right   Tab
	Pinned  bool
	GroupID string
}

func (t Tab) ItemID() string        { return t.ID }
func (g GroupLabel) ItemID() string { return "group:" + g.GroupID }
func (s SplitView) ItemID() string  { return s.ID }

func (Tab) stripItem()        {}
func (GroupLabel) stripItem() {}
func (SplitView) stripItem()  {}

// Classify returns the kind of an item
func Classify(it Item) Kind {
	switch it.(type) {
	case Tab:
		return KindTab
	case GroupLabel:
		return KindGroupLabel
	case SplitView:
		return KindSplitView
	default:
		panic("tabstrip: unknown item type")
	}
}

// IsPinned reports whether an item lives in the pinned region
func IsPinned(it Item) bool {
	switch v := it.(type) {
	case Tab:
		return v.Pinned
	case SplitView:
		return v.Pinned
	case GroupLabel:
		return false
	default:
		return false
	}
}

// GroupOf returns the group an item belongs to. A label belongs to the
// group it heads.
func GroupOf(it Item) string {
	switch v := it.(type) {
	case Tab:
		return v.GroupID
	case SplitView:
		return v.GroupID
	case GroupLabel:
		return v.GroupID
	default:
		return ""
	}
}

// withGroup returns a copy of a tab-like item assigned to group. Labels are
// returned unchanged.
func withGroup(it Item, group string) Item {
	switch v := it.(type) {
	case Tab:
		v.GroupID = group
		return v
	case SplitView:
		v.GroupID = group
		return v
	default:
		return it
	}
}

// withPinned returns a copy of a tab-like item with its pinned flag set.
// Pinned items never belong to a group.
func withPinned(it Item, pinned bool) Item {
	switch v := it.(type) {
	case Tab:
		v.Pinned = pinned
		if pinned {
			v.GroupID = ""
		}
		return v
	case SplitView:
		v.Pinned = pinned
		if pinned {
			v.GroupID = ""
		}
		return v
	default:
		return it
	}
}

// Span is an extent along the strip axis
type Span struct {
	Pos  float32
	Size float32
}

// End returns the trailing edge of the span
func (s Span) End() float32 { return s.Pos + s.Size }

// Contains reports whether p lies within the span, edges included
func (s Span) Contains(p float32) bool { return p >= s.Pos && p <= s.End() }

// Slot is one visible strip element with its geometry. Index is the element
// index within the visible strip and does not change during a drag.
type Slot struct {
	Item  Item
	Index int
	Span  Span
}
