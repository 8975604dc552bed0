package tabstrip

import "fmt"

// Nudge moves the element id by step visible positions within its pinned or
// unpinned region. It is the keyboard counterpart of a drag and commits
// through the same path, so a tab stepping into a group joins it and a
// group steps over whole groups.
func Nudge(c *Collection, id string, step int) (Outcome, error) {
	it, ok := c.Get(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	moving := expandMoving(c, []Item{it})
	inBlock := make(map[string]bool, len(moving))
	for _, m := range moving {
		inBlock[m.ItemID()] = true
	}

	pinned := IsPinned(it)
	offset, home := -1, -1
	var sibs []Slot
	for i, v := range c.Visible() {
		if IsPinned(v) != pinned {
			continue
		}
		if offset < 0 {
			offset = i
		}
		if inBlock[v.ItemID()] {
			if home < 0 {
				home = len(sibs)
			}
			continue
		}
		sibs = append(sibs, Slot{Item: v, Index: i})
	}
	if home < 0 || step == 0 {
		// Hidden in a collapsed group
		return Outcome{}, nil
	}

	slot := clampInt(home+step, 0, len(sibs))
	if Classify(it) == KindGroupLabel {
		slot = snapOutOfGroup(sibs, slot, step > 0)
	}
	return Commit(c, Drop{
		Result:    resolutionAt(sibs, slot, offset),
		Moving:    moving,
		Target:    DropStrip,
		HomeIndex: offset + home,
	})
}
