package tabstrip

import (
	"errors"
	"strings"
	"testing"
)

func TestCollection_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		items []Item
		valid bool
	}{
		{"empty", nil, true},
		{"plain", tabs("a", "b", "c"), true},
		{"pinned first", []Item{Tab{ID: "p", Pinned: true}, Tab{ID: "a"}}, true},
		{"pinned after unpinned", []Item{Tab{ID: "a"}, Tab{ID: "p", Pinned: true}}, false},
		{"pinned grouped", []Item{GroupLabel{GroupID: "g"}, Tab{ID: "p", Pinned: true, GroupID: "g"}}, false},
		{"duplicate id", tabs("a", "b", "a"), false},
		{"member before label", []Item{Tab{ID: "a", GroupID: "g"}, GroupLabel{GroupID: "g"}}, false},
		{"member without label", []Item{Tab{ID: "a", GroupID: "g"}}, false},
		{"group", []Item{GroupLabel{GroupID: "g"}, Tab{ID: "a", GroupID: "g"}, Tab{ID: "b"}}, true},
		{"split view member", []Item{GroupLabel{GroupID: "g"}, SplitView{ID: "s", GroupID: "g"}}, true},
		{"non contiguous", []Item{
			GroupLabel{GroupID: "g"}, Tab{ID: "a", GroupID: "g"}, Tab{ID: "b"}, Tab{ID: "c", GroupID: "g"},
		}, false},
		{"interleaved groups", []Item{
			GroupLabel{GroupID: "g"}, Tab{ID: "a", GroupID: "g"},
			GroupLabel{GroupID: "h"}, Tab{ID: "b", GroupID: "h"},
			Tab{ID: "c", GroupID: "g"},
		}, false},
		{"duplicate label", []Item{GroupLabel{GroupID: "g"}, GroupLabel{GroupID: "g"}}, false},
	}

	for _, tc := range testCases {
		err := NewCollection(tc.items...).Validate()
		if tc.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.valid {
			if err == nil {
				t.Errorf("%s: expected an error", tc.name)
			} else if !errors.Is(err, ErrInvariant) {
				t.Errorf("%s: expected ErrInvariant, got %v", tc.name, err)
			}
		}
	}
}

func TestCollection_VisibleHidesCollapsedMembers(t *testing.T) {
	c := NewCollection(
		Tab{ID: "a"},
		GroupLabel{GroupID: "g", Collapsed: true},
		Tab{ID: "g1", GroupID: "g"},
		Tab{ID: "g2", GroupID: "g"},
		Tab{ID: "b"},
	)
	ids := func() string {
		var out []string
		for _, it := range c.Visible() {
			out = append(out, it.ItemID())
		}
		return strings.Join(out, ",")
	}

	if got := ids(); got != "a,group:g,b" {
		t.Errorf("expected a,group:g,b, got %s", got)
	}
	c.SetActive("g2")
	if got := ids(); got != "a,group:g,g2,b" {
		t.Errorf("expected the active member to stay visible, got %s", got)
	}
	c.SetCollapsed("g", false)
	if got := ids(); got != "a,group:g,g1,g2,b" {
		t.Errorf("expected all members after expanding, got %s", got)
	}
}

func TestCollection_RemoveActivatesNeighbour(t *testing.T) {
	c := NewCollection(tabs("a", "b", "c")...)
	c.SetActive("b")
	removed := c.Remove("b")
	if len(removed) != 1 || removed[0].ItemID() != "b" {
		t.Fatalf("expected b removed, got %v", removed)
	}
	if c.Active() != "c" && c.Active() != "a" {
		t.Errorf("expected a neighbour to become active, got %q", c.Active())
	}
	c.Remove("a", "c")
	if c.Active() != "" {
		t.Errorf("expected no active tab, got %q", c.Active())
	}
}

func TestCollection_InsertClamps(t *testing.T) {
	c := NewCollection(tabs("a", "b")...)
	c.Insert(-5, Tab{ID: "x"})
	c.Insert(99, Tab{ID: "y"})
	if got := strings.Join(c.IDs(), ","); got != "x,a,b,y" {
		t.Errorf("expected x,a,b,y, got %s", got)
	}
}

func TestCollection_RemoveGroupAndPrune(t *testing.T) {
	c := NewCollection(
		GroupLabel{GroupID: "g"}, Tab{ID: "a", GroupID: "g"},
		GroupLabel{GroupID: "h"},
		Tab{ID: "b"},
	)
	c.PruneEmptyGroups()
	if _, ok := c.Label("h"); ok {
		t.Errorf("expected empty group h to be pruned")
	}
	c.RemoveGroup("g")
	if got := strings.Join(c.IDs(), ","); got != "a,b" {
		t.Errorf("expected a,b, got %s", got)
	}
	if it, _ := c.Get("a"); GroupOf(it) != "" {
		t.Errorf("expected a to be ungrouped")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid collection, got %v", err)
	}
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	c := NewCollection(tabs("a", "b")...)
	d := c.Clone()
	d.Remove("a")
	if c.Len() != 2 || d.Len() != 1 {
		t.Errorf("expected clone to be independent, got %d and %d", c.Len(), d.Len())
	}
}
