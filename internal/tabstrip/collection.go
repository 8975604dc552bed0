package tabstrip

import (
	"errors"
	"fmt"
)

// ErrInvariant is returned when a collection would violate its ordering rules
var ErrInvariant = errors.New("tabstrip: collection invariant violated")

// Collection is the ordered list of items shown in one strip.
//
// Ordering rules (see Validate):
//   - pinned items come before unpinned items
//   - group labels are never pinned
//   - a group's label precedes its members and the members are contiguous
//   - item IDs are unique
type Collection struct {
	items  []Item
	active string
}

// NewCollection creates a collection from items in order
func NewCollection(items ...Item) *Collection {
	c := &Collection{items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

// Clone returns an independent copy of the collection
func (c *Collection) Clone() *Collection {
	out := NewCollection(c.items...)
	out.active = c.active
	return out
}

// Items returns a copy of the items in order
func (c *Collection) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the item IDs in order
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ItemID()
	}
	return ids
}

// Len returns the number of items
func (c *Collection) Len() int { return len(c.items) }

// IndexOf returns the position of id, or -1
func (c *Collection) IndexOf(id string) int {
	for i, it := range c.items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// Get returns the item with the given id
func (c *Collection) Get(id string) (Item, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c.items[i], true
	}
	return nil, false
}

// Active returns the ID of the active tab
func (c *Collection) Active() string { return c.active }

// SetActive marks id as the active tab. Unknown IDs are ignored.
func (c *Collection) SetActive(id string) {
	if c.IndexOf(id) >= 0 {
		c.active = id
	}
}

// PinnedCount returns the number of pinned items
func (c *Collection) PinnedCount() int {
	n := 0
	for _, it := range c.items {
		if IsPinned(it) {
			n++
		}
	}
	return n
}

// Label returns the label of a group
func (c *Collection) Label(groupID string) (GroupLabel, bool) {
	for _, it := range c.items {
		if g, ok := it.(GroupLabel); ok && g.GroupID == groupID {
			return g, true
		}
	}
	return GroupLabel{}, false
}

// Members returns the member items of a group in order, label excluded
func (c *Collection) Members(groupID string) []Item {
	var out []Item
	for _, it := range c.items {
		if Classify(it) != KindGroupLabel && GroupOf(it) == groupID && groupID != "" {
			out = append(out, it)
		}
	}
	return out
}

// Visible returns the items shown in the strip: members of collapsed groups
// are hidden unless they are the active tab.
func (c *Collection) Visible() []Item {
	collapsed := make(map[string]bool)
	for _, it := range c.items {
		if g, ok := it.(GroupLabel); ok && g.Collapsed {
			collapsed[g.GroupID] = true
		}
	}
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if Classify(it) != KindGroupLabel && collapsed[GroupOf(it)] && it.ItemID() != c.active {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Replace swaps the item with the same ID for it
func (c *Collection) Replace(it Item) bool {
	i := c.IndexOf(it.ItemID())
	if i < 0 {
		return false
	}
	c.items[i] = it
	return true
}

// SetCollapsed collapses or expands a group
func (c *Collection) SetCollapsed(groupID string, collapsed bool) bool {
	g, ok := c.Label(groupID)
	if !ok {
		return false
	}
	g.Collapsed = collapsed
	return c.Replace(g)
}

// Insert places items at position at (clamped to the valid range)
func (c *Collection) Insert(at int, items ...Item) {
	if at < 0 {
		at = 0
	}
	if at > len(c.items) {
		at = len(c.items)
	}
	out := make([]Item, 0, len(c.items)+len(items))
	out = append(out, c.items[:at]...)
	out = append(out, items...)
	out = append(out, c.items[at:]...)
	c.items = out
}

// Remove takes the items with the given IDs out of the collection and
// returns them in collection order. If the active tab is removed the
// nearest remaining tab becomes active.
func (c *Collection) Remove(ids ...string) []Item {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	activeIdx := c.IndexOf(c.active)
	var removed []Item
	kept := c.items[:0:0]
	for _, it := range c.items {
		if drop[it.ItemID()] {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	if drop[c.active] {
		c.active = ""
		c.activateNear(activeIdx)
	}
	return removed
}

// RemoveGroup deletes a group label and ungroups its members
func (c *Collection) RemoveGroup(groupID string) {
	for i, it := range c.items {
		if Classify(it) != KindGroupLabel && GroupOf(it) == groupID {
			c.items[i] = withGroup(it, "")
		}
	}
	c.Remove(GroupLabel{GroupID: groupID}.ItemID())
}

// PruneEmptyGroups removes labels whose groups have no members left
func (c *Collection) PruneEmptyGroups() {
	for _, it := range c.Items() {
		if g, ok := it.(GroupLabel); ok && len(c.Members(g.GroupID)) == 0 {
			c.Remove(g.ItemID())
		}
	}
}

func (c *Collection) activateNear(idx int) {
	if len(c.items) == 0 {
		return
	}
	if idx >= len(c.items) {
		idx = len(c.items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	for d := 0; d < len(c.items); d++ {
		for _, i := range []int{idx - d, idx + d} {
			if i >= 0 && i < len(c.items) && Classify(c.items[i]) != KindGroupLabel {
				c.active = c.items[i].ItemID()
				return
			}
		}
	}
}

// Validate checks the ordering rules
func (c *Collection) Validate() error {
	seen := make(map[string]bool, len(c.items))
	labels := make(map[string]int)
	closed := make(map[string]bool)
	seenUnpinned := false
	current := ""

	for i, it := range c.items {
		id := it.ItemID()
		if id == "" || seen[id] {
			return fmt.Errorf("%w: duplicate or empty id %q at %d", ErrInvariant, id, i)
		}
		seen[id] = true

		if IsPinned(it) {
			if seenUnpinned {
				return fmt.Errorf("%w: pinned item %q after unpinned items", ErrInvariant, id)
			}
			if GroupOf(it) != "" {
				return fmt.Errorf("%w: pinned item %q is grouped", ErrInvariant, id)
			}
			continue
		}
		seenUnpinned = true

		switch v := it.(type) {
		case GroupLabel:
			if _, dup := labels[v.GroupID]; dup {
				return fmt.Errorf("%w: duplicate label for group %q", ErrInvariant, v.GroupID)
			}
			if current != "" {
				closed[current] = true
			}
			labels[v.GroupID] = i
			current = v.GroupID
		default:
			g := GroupOf(it)
			if g == "" {
				if current != "" {
					closed[current] = true
					current = ""
				}
				continue
			}
			if _, ok := labels[g]; !ok {
				return fmt.Errorf("%w: item %q in group %q before its label", ErrInvariant, id, g)
			}
			if g != current || closed[g] {
				return fmt.Errorf("%w: group %q is not contiguous at %q", ErrInvariant, g, id)
			}
		}
	}
	return nil
}
