package tabstrip

import (
	"fmt"
)

// DropIndex resolves where files dropped from outside the application land
// when released at p. Dropped tabs always open unpinned, before the first
// unpinned element whose midpoint lies past p.
func DropIndex(slots []Slot, p float32) Resolution {
	var sibs []Slot
	offset := 0
	for _, sl := range slots {
		if IsPinned(sl.Item) {
			offset++
			continue
		}
		sibs = append(sibs, sl)
	}
	slot := len(sibs)
	for i, sl := range sibs {
		if sl.Span.Pos+sl.Span.Size/2 > p {
			slot = i
			break
		}
	}
	return resolutionAt(sibs, slot, offset)
}

// InsertDropped adds tabs at res and activates the first one. Tabs take
// the group res lands in. If the result would break the ordering rules c
// is left unchanged and an error wrapping ErrInvariant is returned.
func InsertDropped(c *Collection, res Resolution, tabs []Tab) (Outcome, error) {
	if len(tabs) == 0 {
		return Outcome{}, nil
	}
	items := make([]Item, len(tabs))
	for i, t := range tabs {
		t.Pinned = false
		t.GroupID = res.Group
		items[i] = t
	}

	before := c.Clone()
	c.Insert(insertionPoint(c, res, false), items...)
	if err := c.Validate(); err != nil {
		*c = *before
		return Outcome{}, fmt.Errorf("open %d tabs: %w", len(items), err)
	}
	c.SetActive(items[0].ItemID())
	return Outcome{Kind: OutcomeOpened, Items: items, GroupID: res.Group}, nil
}
