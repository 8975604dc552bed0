package tabstrip

import (
	"math"
	"testing"
	"time"
)

// fourSiblings is a,b,d,e around a 100 wide block gathered at slot 2
func fourSiblings() []Slot {
	ids := []string{"a", "b", "d", "e"}
	pos := []float32{0, 100, 300, 400}
	out := make([]Slot, len(ids))
	for i, id := range ids {
		idx := i
		if i >= 2 {
			idx++
		}
		out[i] = Slot{Item: Tab{ID: id}, Index: idx, Span: Span{Pos: pos[i], Size: 100}}
	}
	return out
}

func TestResolve_PointerBeforeFirst(t *testing.T) {
	for _, forward := range []bool{false, true} {
		for _, p := range []float32{-1000, -50, -0.5} {
			res := Resolve(Query{
				Siblings: fourSiblings(),
				Block:    Span{Pos: 0, Size: 100},
				Home:     2,
				Prev:     2,
				Forward:  forward,
				Pointer:  p,
			}, DefaultThresholds())
			if res.Index != 0 || res.Slot != 0 {
				t.Errorf("pointer %v forward=%v: expected insert at start, got index %d", p, forward, res.Index)
			}
			if res.Target == nil || res.Target.ItemID() != "a" || !res.Before {
				t.Errorf("pointer %v forward=%v: expected before a, got %v before=%v", p, forward, res.Target, res.Before)
			}
		}
	}
}

func TestResolve_PointerAfterLast(t *testing.T) {
	for _, forward := range []bool{true, false} {
		for _, p := range []float32{500.5, 650, 10000} {
			res := Resolve(Query{
				Siblings: fourSiblings(),
				Block:    Span{Pos: 400, Size: 100},
				Home:     2,
				Prev:     2,
				Forward:  forward,
				Pointer:  p,
			}, DefaultThresholds())
			if res.Slot != 4 || res.Index != 4 {
				t.Errorf("pointer %v forward=%v: expected append at end, got index %d", p, forward, res.Index)
			}
			if res.Target == nil || res.Target.ItemID() != "e" || res.Before {
				t.Errorf("pointer %v forward=%v: expected after e, got %v before=%v", p, forward, res.Target, res.Before)
			}
		}
	}
}

func TestResolve_EmptySiblings(t *testing.T) {
	res := Resolve(Query{Block: Span{Size: 100}, Pointer: 40, Offset: 3}, DefaultThresholds())
	if res.Index != 3 || res.Target != nil {
		t.Errorf("expected index 3 with no target, got %d %v", res.Index, res.Target)
	}
}

func TestResolve_MoveOverThreshold(t *testing.T) {
	testCases := []struct {
		blockPos float32
		expected int
	}{
		{210, 2},
		{250, 2}, // exactly half: not passed
		{251, 3},
		{260, 3},
		{300, 3},
	}

	for _, tc := range testCases {
		block := Span{Pos: tc.blockPos, Size: 100}
		res := Resolve(Query{
			Siblings: fourSiblings(),
			Block:    block,
			Home:     2,
			Prev:     2,
			Forward:  true,
			Pointer:  block.Pos + 50,
		}, DefaultThresholds())
		if res.Index != tc.expected {
			t.Errorf("block at %v: expected index %d, got %d", tc.blockPos, tc.expected, res.Index)
		}
	}
}

func TestResolve_ConfiguredThreshold(t *testing.T) {
	th := Thresholds{MoveOver: 0.8, GroupOverlap: 0.3}
	block := Span{Pos: 270, Size: 100}
	q := Query{Siblings: fourSiblings(), Block: block, Home: 2, Prev: 2, Forward: true, Pointer: 320}

	if res := Resolve(q, th); res.Index != 2 {
		t.Errorf("70%% overlap at 80%% threshold: expected 2, got %d", res.Index)
	}
	q.Block.Pos = 285
	q.Pointer = 335
	if res := Resolve(q, th); res.Index != 3 {
		t.Errorf("85%% overlap at 80%% threshold: expected 3, got %d", res.Index)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	q := Query{
		Siblings: fourSiblings(),
		Block:    Span{Pos: 265, Size: 100},
		Home:     2,
		Prev:     2,
		Forward:  true,
		Pointer:  315,
	}
	first := Resolve(q, DefaultThresholds())
	second := Resolve(q, DefaultThresholds())
	if first != second {
		t.Errorf("expected identical resolutions, got %+v and %+v", first, second)
	}
}

func TestResolve_PassedSiblingReturnsOnFullCover(t *testing.T) {
	// d was passed, so with the block at slot 3 it sits at 200..300
	testCases := []struct {
		blockPos float32
		expected int
	}{
		{245, 3}, // 55% over the moved sibling
		{210, 3},
		{201, 3},
		{200, 2}, // covers it completely
		{150, 2},
	}

	for _, tc := range testCases {
		block := Span{Pos: tc.blockPos, Size: 100}
		res := Resolve(Query{
			Siblings: fourSiblings(),
			Block:    block,
			Home:     2,
			Prev:     3,
			Forward:  false,
			Pointer:  block.Pos + 50,
		}, DefaultThresholds())
		if res.Slot != tc.expected {
			t.Errorf("block at %v: expected slot %d, got %d", tc.blockPos, tc.expected, res.Slot)
		}
	}
}

func TestResolve_DirectionGating(t *testing.T) {
	// Moving backward never advances the slot past prev
	res := Resolve(Query{
		Siblings: fourSiblings(),
		Block:    Span{Pos: 420, Size: 100},
		Home:     2,
		Prev:     2,
		Forward:  false,
		Pointer:  470,
	}, DefaultThresholds())
	if res.Slot != 2 {
		t.Errorf("expected backward move to keep slot 2, got %d", res.Slot)
	}
}

func TestResolve_GroupDragSnapsOutOfGroup(t *testing.T) {
	sibs := []Slot{
		{Item: GroupLabel{GroupID: "y"}, Index: 3, Span: Span{Pos: 300, Size: 100}},
		{Item: Tab{ID: "y1", GroupID: "y"}, Index: 4, Span: Span{Pos: 400, Size: 100}},
		{Item: Tab{ID: "y2", GroupID: "y"}, Index: 5, Span: Span{Pos: 500, Size: 100}},
		{Item: Tab{ID: "z"}, Index: 6, Span: Span{Pos: 600, Size: 100}},
	}
	testCases := []struct {
		name      string
		block     Span
		forward   bool
		prev      int
		groupDrag bool
		expected  int
	}{
		{"forward into group snaps past it", Span{Pos: 160, Size: 300}, true, 0, true, 3},
		{"plain tab may land inside", Span{Pos: 360, Size: 100}, true, 0, false, 2},
	}

	for _, tc := range testCases {
		res := Resolve(Query{
			Siblings:  sibs,
			Block:     tc.block,
			Home:      0,
			Prev:      tc.prev,
			Forward:   tc.forward,
			Pointer:   tc.block.Pos + tc.block.Size/2,
			GroupDrag: tc.groupDrag,
		}, DefaultThresholds())
		if res.Slot != tc.expected {
			t.Errorf("%s: expected slot %d, got %d", tc.name, tc.expected, res.Slot)
		}
		if tc.groupDrag && res.Group != "" {
			t.Errorf("%s: group drag must not join a group, got %q", tc.name, res.Group)
		}
	}
}

func TestResolve_GroupAtSlot(t *testing.T) {
	sibs := []Slot{
		{Item: Tab{ID: "a"}, Index: 0, Span: Span{Pos: 0, Size: 100}},
		{Item: GroupLabel{GroupID: "g"}, Index: 1, Span: Span{Pos: 100, Size: 100}},
		{Item: Tab{ID: "g1", GroupID: "g"}, Index: 2, Span: Span{Pos: 200, Size: 100}},
		{Item: Tab{ID: "g2", GroupID: "g"}, Index: 3, Span: Span{Pos: 300, Size: 100}},
	}
	testCases := []struct {
		slot     int
		expected string
	}{
		{0, ""},
		{1, ""},  // before the label
		{2, "g"}, // between label and first member
		{3, "g"},
		{4, ""}, // end of strip
	}

	for _, tc := range testCases {
		if got := resolutionAt(sibs, tc.slot, 0).Group; got != tc.expected {
			t.Errorf("slot %d: expected group %q, got %q", tc.slot, tc.expected, got)
		}
	}
}

func TestResolve_GroupingAdvisory(t *testing.T) {
	sibs := []Slot{
		{Item: Tab{ID: "b"}, Index: 1, Span: Span{Pos: 100, Size: 100}},
		{Item: GroupLabel{GroupID: "g", Collapsed: true}, Index: 2, Span: Span{Pos: 200, Size: 100}},
		{Item: Tab{ID: "c", GroupID: "h"}, Index: 3, Span: Span{Pos: 300, Size: 100}},
	}
	testCases := []struct {
		name     string
		block    Span
		pinned   bool
		expected Advisory
		target   string
	}{
		{"ungrouped tab", Span{Pos: 30, Size: 100}, false, AdvisoryCreateGroup, "b"},
		{"below group threshold", Span{Pos: 10, Size: 100}, false, AdvisoryNone, ""},
		{"collapsed label", Span{Pos: 130, Size: 100}, false, AdvisoryJoinGroup, "group:g"},
		{"grouped tab", Span{Pos: 230, Size: 100}, false, AdvisoryNone, ""},
		{"pinned drag never groups", Span{Pos: 30, Size: 100}, true, AdvisoryNone, ""},
	}

	for _, tc := range testCases {
		res := Resolve(Query{
			Siblings: sibs,
			Block:    tc.block,
			Home:     0,
			Prev:     0,
			Forward:  true,
			Pointer:  tc.block.End() - 10,
			Pinned:   tc.pinned,
		}, DefaultThresholds())
		if res.Advisory != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, res.Advisory)
			continue
		}
		if tc.target != "" && (res.AdvisoryTarget == nil || res.AdvisoryTarget.ItemID() != tc.target) {
			t.Errorf("%s: expected advisory target %s, got %v", tc.name, tc.target, res.AdvisoryTarget)
		}
	}
}

func TestThresholds_Normalized(t *testing.T) {
	testCases := []struct {
		name     string
		in       Thresholds
		expected Thresholds
	}{
		{"defaults", DefaultThresholds(), DefaultThresholds()},
		{"too low", Thresholds{MoveOver: 0.1, GroupOverlap: 0.05}, Thresholds{MoveOver: 0.5, GroupOverlap: 0.05}},
		{"too high", Thresholds{MoveOver: 1.5, GroupOverlap: 0.2}, Thresholds{MoveOver: 0.95, GroupOverlap: 0.2}},
		{"group above move", Thresholds{MoveOver: 0.6, GroupOverlap: 0.7}, Thresholds{MoveOver: 0.6, GroupOverlap: 0.3}},
		{"negative delay", Thresholds{MoveOver: 0.5, GroupOverlap: 0.1, GroupDelay: -time.Second}, Thresholds{MoveOver: 0.5, GroupOverlap: 0.1}},
		{"nan", Thresholds{MoveOver: float32(math.NaN()), GroupOverlap: float32(math.NaN())}, Thresholds{MoveOver: 0.5}},
	}

	for _, tc := range testCases {
		if got := tc.in.Normalized(); got != tc.expected {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.expected, got)
		}
	}
}

func TestGreatestOverlap(t *testing.T) {
	testCases := []struct {
		p1, s1, p2, s2 float32
		expected       float32
	}{
		{0, 100, 50, 100, 0.5},
		{50, 100, 0, 100, 0.5},
		{0, 100, 100, 100, 0},
		{0, 300, 100, 100, 1},
		{0, 100, 500, 100, 0},
		{0, 0, 0, 100, 0},
	}

	for _, tc := range testCases {
		if got := greatestOverlap(tc.p1, tc.s1, tc.p2, tc.s2); got != tc.expected {
			t.Errorf("overlap(%v,%v,%v,%v): expected %v, got %v", tc.p1, tc.s1, tc.p2, tc.s2, tc.expected, got)
		}
	}
}
