package tabstrip

import (
	"fmt"

	"github.com/google/uuid"
)

// ToggleGroup puts an ungrouped tab into a new group of its own, or takes a
// grouped tab out of its group. A tab leaving a group is placed right after
// the group so the rest of the group stays contiguous. Pinned items and
// labels cannot be grouped this way.
func ToggleGroup(c *Collection, id string) (Outcome, error) {
	it, ok := c.Get(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if Classify(it) == KindGroupLabel || IsPinned(it) {
		return Outcome{}, nil
	}

	before := c.Clone()
	active := c.Active()
	var out Outcome
	if g := GroupOf(it); g != "" {
		removed := c.Remove(id)
		c.Insert(lastOfGroup(c, g)+1, withGroup(removed[0], ""))
		c.PruneEmptyGroups()
		out = Outcome{Kind: OutcomeUngrouped, Items: []Item{withGroup(it, "")}, GroupID: g}
	} else {
		gid := uuid.NewString()
		label := GroupLabel{
			GroupID: gid,
			Color:   GroupColors[countGroups(c)%len(GroupColors)],
		}
		at := c.IndexOf(id)
		c.items[at] = withGroup(it, gid)
		c.Insert(at, label)
		out = Outcome{Kind: OutcomeGrouped, Items: []Item{c.items[at+1]}, GroupID: gid}
	}

	if c.IndexOf(active) >= 0 {
		c.active = active
	}
	if err := c.Validate(); err != nil {
		*c = *before
		return Outcome{}, fmt.Errorf("toggle group %s: %w", id, err)
	}
	return out, nil
}
