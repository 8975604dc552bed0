package tabstrip

import (
	"errors"
	"testing"
	"time"
)

func TestController_ExampleScenario(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "c", 250)

	// Block at 250: half of d overlapped, not passed
	if res := h.move(300); res.Index != 2 {
		t.Errorf("50%% overlap: expected index 2, got %d", res.Index)
	}
	// Block at 260: 60% of d overlapped
	if res := h.move(310); res.Index != 3 {
		t.Errorf("60%% overlap: expected index 3, got %d", res.Index)
	}
	if got := h.ctl.Offset("d"); got != -100 {
		t.Errorf("expected d shifted by -100, got %v", got)
	}
	// Grabbed 50 into c, so the block starts at 260: 60 from its home
	if got := h.ctl.Offset("c"); got != 60 {
		t.Errorf("expected c translated by 60, got %v", got)
	}
	if got := h.ctl.Offset("e"); got != 0 {
		t.Errorf("expected e untouched, got %v", got)
	}

	out, err := h.ctl.Drop(DropStrip, false)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if out.Kind != OutcomeMoved {
		t.Errorf("expected moved, got %s", out.Kind)
	}
	if got := h.order(); got != "a,b,d,c,e" {
		t.Errorf("expected a,b,d,c,e, got %s", got)
	}
}

func TestController_NoOpDrop(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	before := h.order()
	mustStart(t, h, "c", 250)
	h.move(270)
	h.move(240)

	out, err := h.ctl.Drop(DropStrip, false)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if out.Kind != OutcomeNone {
		t.Errorf("expected no-op, got %s", out.Kind)
	}
	if got := h.order(); got != before {
		t.Errorf("expected %s, got %s", before, got)
	}
}

func TestController_Hysteresis(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "c", 250)

	// A forward sweep shorter than half an item changes the index at most once
	changes := 0
	last := h.move(280).Index
	for p := float32(281); p <= 325; p++ {
		idx := h.move(p).Index
		if idx != last {
			changes++
			last = idx
		}
	}
	if changes > 1 {
		t.Errorf("expected at most one index change, got %d", changes)
	}

	// Jitter on either side of the swap point after it was crossed
	for i := 0; i < 10; i++ {
		p := float32(305)
		if i%2 == 1 {
			p = 315
		}
		if idx := h.move(p).Index; idx != 3 {
			t.Fatalf("jitter step %d at %v: expected index 3, got %d", i, p, idx)
		}
	}
}

func TestController_JitterAcrossSwapPoint(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "c", 250)

	// The block crosses 50% of d at pointer 300
	var indices []int
	changes := 0
	last := 2
	for i := 0; i < 10; i++ {
		p := float32(305)
		if i%2 == 1 {
			p = 295
		}
		idx := h.move(p).Index
		indices = append(indices, idx)
		if idx != last {
			changes++
			last = idx
		}
	}
	if changes > 1 {
		t.Errorf("expected at most one index change, got %d: %v", changes, indices)
	}
	if last != 3 {
		t.Errorf("expected d to stay passed, got index %d", last)
	}

	// Moving back until the block covers d again returns c home
	if res := h.move(250); res.Index != 2 {
		t.Errorf("expected index 2 once d is covered, got %d", res.Index)
	}
}

func TestController_ThresholdsKeptForActiveDrag(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "c", 250)

	h.ctl.SetThresholds(Thresholds{MoveOver: 0.9, GroupOverlap: 0.1})
	if got := h.ctl.Thresholds().MoveOver; got != 0.9 {
		t.Errorf("expected new threshold stored, got %v", got)
	}
	// 65% of d overlapped: passes at the 50% the drag started with
	if res := h.move(315); res.Index != 3 {
		t.Errorf("expected the drag to keep its thresholds, got index %d", res.Index)
	}
	h.ctl.Cancel()

	// The next drag uses the new value
	mustStart(t, h, "c", 250)
	if res := h.move(315); res.Index != 2 {
		t.Errorf("expected the new threshold on the next drag, got index %d", res.Index)
	}
}

func TestController_CleanupSymmetry(t *testing.T) {
	testCases := []struct {
		name   string
		finish func(h *harness)
	}{
		{"drop", func(h *harness) { h.ctl.Drop(DropStrip, false) }},
		{"cancel", func(h *harness) { h.ctl.Cancel() }},
		{"cleanup", func(h *harness) { h.ctl.Cleanup() }},
	}
	moves := []float32{260, 320, 410, 480, 390, 120, 40, 330}

	for _, tc := range testCases {
		h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
		mustStart(t, h, "c", 250)
		for _, p := range moves {
			h.move(p)
		}
		if len(h.sink.offsets) == 0 {
			t.Fatalf("%s: expected offsets during the drag", tc.name)
		}
		tc.finish(h)

		if len(h.sink.offsets) != 0 {
			t.Errorf("%s: expected all offsets cleared, got %v", tc.name, h.sink.offsets)
		}
		if h.ctl.Active() || h.ctl.Session() != nil || h.ctl.State() != Idle {
			t.Errorf("%s: expected idle controller, got %s", tc.name, h.ctl.State())
		}
	}
}

func TestController_CancelLeavesOrder(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "a", 50)
	h.move(420)
	h.ctl.Cancel()
	if got := h.order(); got != "a,b,c,d,e" {
		t.Errorf("expected order unchanged, got %s", got)
	}
	h.ctl.Cancel() // idle cancel is harmless
}

func TestController_StartErrors(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b")...)

	if err := h.ctl.Start("zz", 0, nil); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
	if _, err := h.ctl.Drop(DropStrip, false); !errors.Is(err, ErrNotDragging) {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}
	mustStart(t, h, "a", 10)
	if err := h.ctl.Start("b", 110, nil); !errors.Is(err, ErrDragActive) {
		t.Errorf("expected ErrDragActive, got %v", err)
	}
	if h.ctl.Session().Anchor().ItemID() != "a" {
		t.Errorf("expected the first session to survive")
	}
}

func TestController_IdleMoveIsNoop(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b")...)
	if res := h.move(150); res != (Resolution{}) {
		t.Errorf("expected zero resolution, got %+v", res)
	}
	if h.sink.calls != 0 {
		t.Errorf("expected no sink calls, got %d", h.sink.calls)
	}
}

func TestController_PinnedClamp(t *testing.T) {
	items := []Item{
		Tab{ID: "p1", Pinned: true},
		Tab{ID: "p2", Pinned: true},
		Tab{ID: "a"}, Tab{ID: "b"}, Tab{ID: "c"},
	}
	h := newHarness(DefaultThresholds(), items...)
	mustStart(t, h, "p1", 50)

	res := h.move(450)
	if res.Index != 1 {
		t.Errorf("expected last pinned index 1, got %d", res.Index)
	}
	if got := h.ctl.Offset("a"); got != 0 {
		t.Errorf("expected unpinned tabs untouched, got %v", got)
	}
	if got := h.ctl.Session().Block().End(); got > 200 {
		t.Errorf("expected block to stay in the pinned region, ends at %v", got)
	}
	if _, err := h.ctl.Drop(DropStrip, false); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if got := h.order(); got != "p2,p1,a,b,c" {
		t.Errorf("expected p2,p1,a,b,c, got %s", got)
	}
	if it, _ := h.col.Get("p1"); !IsPinned(it) {
		t.Errorf("expected p1 to stay pinned")
	}
}

func TestController_UnpinnedClamp(t *testing.T) {
	items := []Item{
		Tab{ID: "p1", Pinned: true},
		Tab{ID: "p2", Pinned: true},
		Tab{ID: "a"}, Tab{ID: "b"}, Tab{ID: "c"},
	}
	h := newHarness(DefaultThresholds(), items...)
	mustStart(t, h, "c", 450)

	res := h.move(-300)
	if res.Index != 2 {
		t.Errorf("expected first unpinned index 2, got %d", res.Index)
	}
	h.ctl.Drop(DropStrip, false)
	if got := h.order(); got != "p1,p2,c,a,b" {
		t.Errorf("expected p1,p2,c,a,b, got %s", got)
	}
}

func TestController_GroupingAdvisoryDebounce(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c")...)
	mustStart(t, h, "a", 50)

	t0 := h.now.Add(time.Millisecond)
	res := h.ctl.Move(80, t0)
	if res.Advisory != AdvisoryNone {
		t.Fatalf("expected advisory to be pending, got %s", res.Advisory)
	}
	deadline, ok := h.ctl.Deadline()
	if !ok || !deadline.Equal(t0.Add(350*time.Millisecond)) {
		t.Fatalf("expected deadline at +350ms, got %v %v", deadline, ok)
	}

	// Same candidate keeps the original deadline
	h.ctl.Move(81, t0.Add(200*time.Millisecond))
	if d, _ := h.ctl.Deadline(); !d.Equal(deadline) {
		t.Errorf("expected deadline unchanged, got %v", d)
	}
	if h.ctl.Tick(t0.Add(300 * time.Millisecond)) {
		t.Errorf("expected tick before deadline to do nothing")
	}
	if !h.ctl.Tick(t0.Add(350 * time.Millisecond)) {
		t.Fatalf("expected tick at deadline to activate the advisory")
	}
	got := h.ctl.Session().Result
	if got.Advisory != AdvisoryCreateGroup || got.AdvisoryTarget.ItemID() != "b" {
		t.Fatalf("expected create-group on b, got %s on %v", got.Advisory, got.AdvisoryTarget)
	}

	out, err := h.ctl.Drop(DropStrip, false)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if out.Kind != OutcomeGrouped || out.GroupID == "" {
		t.Fatalf("expected grouped outcome, got %s", out.Kind)
	}
	items := h.col.Items()
	if _, ok := items[0].(GroupLabel); !ok {
		t.Fatalf("expected a group label first, got %v", items[0])
	}
	for i, id := range []string{"a", "b"} {
		if it := items[i+1]; it.ItemID() != id || GroupOf(it) != out.GroupID {
			t.Errorf("expected %s in the new group at %d, got %v", id, i+1, it)
		}
	}
	if GroupOf(items[3]) != "" {
		t.Errorf("expected c ungrouped, got %q", GroupOf(items[3]))
	}
}

func TestController_AdvisoryClearedByMove(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c")...)
	mustStart(t, h, "a", 50)
	h.move(80)
	if _, ok := h.ctl.Deadline(); !ok {
		t.Fatalf("expected a pending advisory")
	}
	h.move(40)
	if _, ok := h.ctl.Deadline(); ok {
		t.Errorf("expected the pending advisory to be dropped")
	}
	if h.ctl.Tick(h.now.Add(time.Second)) {
		t.Errorf("expected nothing to activate")
	}
}

func TestController_AdvisoryWithoutDelay(t *testing.T) {
	th := DefaultThresholds()
	th.GroupDelay = 0
	h := newHarness(th, tabs("a", "b", "c")...)
	mustStart(t, h, "a", 50)
	if res := h.move(80); res.Advisory != AdvisoryCreateGroup {
		t.Errorf("expected immediate advisory, got %s", res.Advisory)
	}
}

func TestController_JoinCollapsedGroup(t *testing.T) {
	h := newHarness(DefaultThresholds(),
		Tab{ID: "a"},
		GroupLabel{GroupID: "g", Collapsed: true},
		Tab{ID: "g1", GroupID: "g"},
		Tab{ID: "g2", GroupID: "g"},
		Tab{ID: "c"},
	)
	h.col.SetActive("a")
	mustStart(t, h, "a", 50)

	t0 := h.now.Add(time.Millisecond)
	h.ctl.Move(80, t0)
	if !h.ctl.Tick(t0.Add(time.Second)) {
		t.Fatalf("expected the join advisory to activate")
	}
	out, err := h.ctl.Drop(DropStrip, false)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if out.Kind != OutcomeJoinedGroup || out.GroupID != "g" {
		t.Fatalf("expected joined group g, got %s %q", out.Kind, out.GroupID)
	}
	if got := h.order(); got != "group:g,g1,g2,a,c" {
		t.Errorf("expected group:g,g1,g2,a,c, got %s", got)
	}
	if h.col.Active() != "a" {
		t.Errorf("expected a to stay active, got %q", h.col.Active())
	}
}

func TestController_GroupDrag(t *testing.T) {
	h := newHarness(DefaultThresholds(),
		GroupLabel{GroupID: "x"},
		Tab{ID: "x1", GroupID: "x"},
		Tab{ID: "x2", GroupID: "x"},
		GroupLabel{GroupID: "y"},
		Tab{ID: "y1", GroupID: "y"},
		Tab{ID: "y2", GroupID: "y"},
		Tab{ID: "z"},
	)
	// Grabbed near the end of the group so the pointer is already past y's
	// label when the block overlaps y1
	mustStart(t, h, "group:x", 250)
	if got := len(h.ctl.Session().Moving); got != 3 {
		t.Fatalf("expected the whole group to move, got %d items", got)
	}

	res := h.move(410)
	if res.Index != 3 {
		t.Errorf("expected snap past group y to index 3, got %d", res.Index)
	}
	if _, err := h.ctl.Drop(DropStrip, false); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if got := h.order(); got != "group:y,y1,y2,group:x,x1,x2,z" {
		t.Errorf("expected group x after group y, got %s", got)
	}
}

func TestController_MultiSelectGathers(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "b", 150, "d")

	if got := h.ctl.Offset("d"); got != -100 {
		t.Errorf("expected d gathered next to b, got %v", got)
	}
	if got := h.ctl.Offset("c"); got != 100 {
		t.Errorf("expected c pushed past the block, got %v", got)
	}

	res := h.move(260)
	if res.Index != 2 {
		t.Errorf("expected index 2, got %d", res.Index)
	}
	if got := h.ctl.Offset("c"); got != -100 {
		t.Errorf("expected c shifted into the gap, got %v", got)
	}
	h.ctl.Drop(DropStrip, false)
	if got := h.order(); got != "a,c,b,d,e" {
		t.Errorf("expected a,c,b,d,e, got %s", got)
	}
}

func TestController_MultiSelectDropInPlace(t *testing.T) {
	h := newHarness(DefaultThresholds(), tabs("a", "b", "c", "d", "e")...)
	mustStart(t, h, "b", 150, "d")
	out, err := h.ctl.Drop(DropStrip, false)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if out.Kind != OutcomeMoved {
		t.Errorf("expected the selection to be gathered, got %s", out.Kind)
	}
	if got := h.order(); got != "a,b,d,c,e" {
		t.Errorf("expected a,b,d,c,e, got %s", got)
	}
}
