package tabstrip

import (
	"fmt"

	"github.com/google/uuid"
)

// DropTarget is where a drag was released
type DropTarget int

const (
	// DropStrip releases inside the strip the drag started in
	DropStrip DropTarget = iota
	// DropPinnedZone releases over the pinned region
	DropPinnedZone
	// DropUnpinnedZone releases over the unpinned region
	DropUnpinnedZone
	// DropNewWindow releases away from any strip
	DropNewWindow
)

func (t DropTarget) String() string {
	switch t {
	case DropStrip:
		return "strip"
	case DropPinnedZone:
		return "pinned-zone"
	case DropUnpinnedZone:
		return "unpinned-zone"
	case DropNewWindow:
		return "new-window"
	default:
		return "unknown"
	}
}

// Drop describes a released drag
type Drop struct {
	Result    Resolution
	Moving    []Item
	Copy      bool
	Target    DropTarget
	HomeIndex int // visible index of the block when the drag started
}

// OutcomeKind is what a drop did to the collection
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeMoved
	OutcomeCopied
	OutcomeGrouped
	OutcomeJoinedGroup
	OutcomePinned
	OutcomeUnpinned
	OutcomeDetached
	OutcomeUngrouped
	// OutcomeOpened reports tabs created from files dropped onto the strip
	OutcomeOpened
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeMoved:
		return "moved"
	case OutcomeCopied:
		return "copied"
	case OutcomeGrouped:
		return "grouped"
	case OutcomeJoinedGroup:
		return "joined-group"
	case OutcomePinned:
		return "pinned"
	case OutcomeUnpinned:
		return "unpinned"
	case OutcomeDetached:
		return "detached"
	case OutcomeUngrouped:
		return "ungrouped"
	case OutcomeOpened:
		return "opened"
	default:
		return "unknown"
	}
}

// Outcome reports the result of Commit. For OutcomeDetached, Items are the
// items to open in a new window and are no longer in the collection unless
// they were copies.
type Outcome struct {
	Kind    OutcomeKind
	Items   []Item
	GroupID string
}

// GroupColors is the palette new groups cycle through
var GroupColors = []string{"blue", "purple", "cyan", "orange", "yellow", "pink", "green", "red"}

// Commit applies a drop to c. Drops that would change nothing return
// OutcomeNone. If the result would break the ordering rules c is left
// unchanged and an error wrapping ErrInvariant is returned.
func Commit(c *Collection, d Drop) (Outcome, error) {
	moving := expandMoving(c, d.Moving)
	if len(moving) == 0 {
		return Outcome{}, nil
	}
	ids := make(map[string]bool, len(moving))
	for _, it := range moving {
		ids[it.ItemID()] = true
	}
	// Dropped onto itself
	if d.Result.Target != nil && ids[d.Result.Target.ItemID()] {
		return Outcome{}, nil
	}
	if d.Result.AdvisoryTarget != nil && ids[d.Result.AdvisoryTarget.ItemID()] {
		return Outcome{}, nil
	}

	before := c.Clone()
	active := c.Active()

	var out Outcome
	switch d.Target {
	case DropNewWindow:
		out = detach(c, moving, d.Copy)
	case DropPinnedZone:
		out = pin(c, moving, true)
	case DropUnpinnedZone:
		out = pin(c, moving, false)
	}
	if d.Target == DropStrip || (out.Kind == OutcomeNone && d.Target != DropNewWindow) {
		out = reorder(c, moving, d)
	}
	if out.Kind == OutcomeNone {
		*c = *before
		return out, nil
	}

	c.PruneEmptyGroups()
	if c.IndexOf(active) >= 0 {
		c.active = active
	}
	if err := c.Validate(); err != nil {
		*c = *before
		return Outcome{}, fmt.Errorf("commit %s: %w", out.Kind, err)
	}
	if out.Kind == OutcomeMoved && sameLayout(before, c) {
		return Outcome{}, nil
	}
	return out, nil
}

// expandMoving refreshes the dragged items from c and adds the members of
// dragged groups. The result is in collection order.
func expandMoving(c *Collection, items []Item) []Item {
	want := make(map[string]bool, len(items))
	groups := make(map[string]bool)
	for _, it := range items {
		want[it.ItemID()] = true
		if g, ok := it.(GroupLabel); ok {
			groups[g.GroupID] = true
		}
	}
	var out []Item
	for _, it := range c.items {
		if want[it.ItemID()] || groups[GroupOf(it)] {
			out = append(out, it)
		}
	}
	return out
}

func detach(c *Collection, moving []Item, copyItems bool) Outcome {
	if copyItems {
		return Outcome{Kind: OutcomeDetached, Items: ungroupOrphans(copies(moving))}
	}
	left := 0
	ids := make(map[string]bool, len(moving))
	for _, it := range moving {
		ids[it.ItemID()] = true
	}
	for _, it := range c.items {
		if !ids[it.ItemID()] && Classify(it) != KindGroupLabel {
			left++
		}
	}
	if left == 0 {
		return Outcome{}
	}
	removed := c.Remove(idsOf(moving)...)
	return Outcome{Kind: OutcomeDetached, Items: ungroupOrphans(removed)}
}

// ungroupOrphans clears the group of items whose label is not among them
func ungroupOrphans(items []Item) []Item {
	labels := make(map[string]bool)
	for _, it := range items {
		if g, ok := it.(GroupLabel); ok {
			labels[g.GroupID] = true
		}
	}
	for i, it := range items {
		if g := GroupOf(it); g != "" && !labels[g] {
			items[i] = withGroup(it, "")
		}
	}
	return items
}

// pin moves tab-like items to the end of the pinned region, or to the start
// of the unpinned region. Groups cannot be pinned.
func pin(c *Collection, moving []Item, pinned bool) Outcome {
	var change []string
	for _, it := range moving {
		if Classify(it) == KindGroupLabel {
			return Outcome{}
		}
		if IsPinned(it) != pinned {
			change = append(change, it.ItemID())
		}
	}
	if len(change) == 0 {
		return Outcome{}
	}
	removed := c.Remove(change...)
	for i, it := range removed {
		removed[i] = withPinned(withGroup(it, ""), pinned)
	}
	c.Insert(c.PinnedCount(), removed...)
	kind := OutcomePinned
	if !pinned {
		kind = OutcomeUnpinned
	}
	return Outcome{Kind: kind, Items: removed}
}

func reorder(c *Collection, moving []Item, d Drop) Outcome {
	res := d.Result
	groupDrag := false
	for _, it := range moving {
		if Classify(it) == KindGroupLabel {
			groupDrag = true
		}
	}

	if d.Copy {
		dup := copies(moving)
		var items []Item
		for _, it := range dup {
			if Classify(it) != KindGroupLabel {
				items = append(items, withGroup(it, res.Group))
			}
		}
		if len(items) == 0 {
			return Outcome{}
		}
		c.Insert(insertionPoint(c, res, IsPinned(items[0])), items...)
		return Outcome{Kind: OutcomeCopied, Items: items, GroupID: res.Group}
	}

	if !groupDrag {
		switch res.Advisory {
		case AdvisoryCreateGroup:
			if out, ok := createGroup(c, moving, res); ok {
				return out
			}
		case AdvisoryJoinGroup:
			if out, ok := joinGroup(c, moving, res); ok {
				return out
			}
		}
	}

	if res.Index == d.HomeIndex && contiguous(c, moving) {
		return Outcome{}
	}

	removed := c.Remove(idsOf(moving)...)
	if !groupDrag {
		for i, it := range removed {
			removed[i] = withGroup(it, res.Group)
		}
	}
	c.Insert(insertionPoint(c, res, IsPinned(moving[0])), removed...)
	return Outcome{Kind: OutcomeMoved, Items: removed, GroupID: res.Group}
}

func createGroup(c *Collection, moving []Item, res Resolution) (Outcome, bool) {
	target, ok := res.AdvisoryTarget.(Tab)
	if !ok || target.Pinned || target.GroupID != "" || c.IndexOf(target.ID) < 0 {
		return Outcome{}, false
	}
	gid := uuid.NewString()
	label := GroupLabel{
		GroupID: gid,
		Color:   GroupColors[countGroups(c)%len(GroupColors)],
	}

	removed := c.Remove(idsOf(moving)...)
	for i, it := range removed {
		removed[i] = withGroup(it, gid)
	}
	at := c.IndexOf(target.ID)
	c.items[at] = withGroup(c.items[at], gid)

	if res.AdvisoryBefore {
		c.Insert(at, append([]Item{label}, removed...)...)
	} else {
		c.Insert(at+1, removed...)
		c.Insert(at, label)
	}
	return Outcome{Kind: OutcomeGrouped, Items: removed, GroupID: gid}, true
}

func joinGroup(c *Collection, moving []Item, res Resolution) (Outcome, bool) {
	label, ok := res.AdvisoryTarget.(GroupLabel)
	if !ok || c.IndexOf(label.ItemID()) < 0 {
		return Outcome{}, false
	}
	removed := c.Remove(idsOf(moving)...)
	for i, it := range removed {
		removed[i] = withGroup(it, label.GroupID)
	}
	c.Insert(lastOfGroup(c, label.GroupID)+1, removed...)
	return Outcome{Kind: OutcomeJoinedGroup, Items: removed, GroupID: label.GroupID}, true
}

// insertionPoint maps a resolution to a collection index. Moving items must
// already be removed from c.
func insertionPoint(c *Collection, res Resolution, pinned bool) int {
	if res.Target == nil {
		if pinned {
			return 0
		}
		return c.PinnedCount()
	}
	idx := c.IndexOf(res.Target.ItemID())
	if idx < 0 {
		if pinned {
			return c.PinnedCount()
		}
		return c.Len()
	}
	g := GroupOf(res.Target)
	if res.Before {
		if g != "" && g != res.Group && Classify(res.Target) != KindGroupLabel {
			if l := c.IndexOf(GroupLabel{GroupID: g}.ItemID()); l >= 0 {
				return l
			}
		}
		return idx
	}
	// Members of a collapsed group may be hidden past the target
	if g != "" && g != res.Group {
		return lastOfGroup(c, g) + 1
	}
	return idx + 1
}

// lastOfGroup returns the index of the last item of a group, label included
func lastOfGroup(c *Collection, groupID string) int {
	last := -1
	for i, it := range c.items {
		if GroupOf(it) == groupID {
			last = i
		}
	}
	return last
}

func countGroups(c *Collection) int {
	n := 0
	for _, it := range c.items {
		if Classify(it) == KindGroupLabel {
			n++
		}
	}
	return n
}

// copies duplicates items under fresh IDs. Labels get a fresh group and the
// copied members follow it.
func copies(items []Item) []Item {
	groups := make(map[string]string)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case Tab:
			v.ID = uuid.NewString()
			v.GroupID = groups[v.GroupID]
			out = append(out, v)
		case SplitView:
			v.ID = uuid.NewString()
			v.Left.ID = uuid.NewString()
			v.Right.ID = uuid.NewString()
			v.GroupID = groups[v.GroupID]
			out = append(out, v)
		case GroupLabel:
			gid := uuid.NewString()
			groups[v.GroupID] = gid
			v.GroupID = gid
			out = append(out, v)
		}
	}
	return out
}

// contiguous reports whether moving occupies consecutive positions in c
func contiguous(c *Collection, moving []Item) bool {
	first := c.IndexOf(moving[0].ItemID())
	last := c.IndexOf(moving[len(moving)-1].ItemID())
	return first >= 0 && last-first+1 == len(moving)
}

func sameLayout(a, b *Collection) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.items {
		x, y := a.items[i], b.items[i]
		if x.ItemID() != y.ItemID() || GroupOf(x) != GroupOf(y) || IsPinned(x) != IsPinned(y) {
			return false
		}
	}
	return true
}

func idsOf(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}
