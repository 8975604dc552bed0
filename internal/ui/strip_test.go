package ui

import (
	"image"
	"testing"

	"gioui.org/f32"
	"gioui.org/layout"

	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// testStrip lays items out edge to edge without a frame. Pinned tabs are
// 36 wide, the rest 100.
func testStrip(t *testing.T, items ...tabstrip.Item) (*TabStrip, *tabstrip.Controller, *tabstrip.Collection) {
	t.Helper()
	col := tabstrip.NewCollection(items...)
	s := NewTabStrip(nil, NewOffsetAnimator(0))
	s.pinnedPx = 36
	s.detachPx = 60
	var pos float32
	for i, it := range col.Visible() {
		size := float32(100)
		if tabstrip.IsPinned(it) {
			size = 36
		}
		s.slots = append(s.slots, tabstrip.Slot{Item: it, Index: i, Span: tabstrip.Span{Pos: pos, Size: size}})
		pos += size
		if tabstrip.IsPinned(it) {
			s.pinnedEnd = pos
		}
	}
	s.extent = image.Pt(int(pos), 32)
	ctl := tabstrip.NewController(col, s, s.Offsets, tabstrip.DefaultThresholds())
	return s, ctl, col
}

func TestTabStrip_DropZone(t *testing.T) {
	testCases := []struct {
		name     string
		pinned   bool // whether the strip starts with a pinned tab
		drag     string
		press    float32
		at       float32
		expected tabstrip.DropTarget
	}{
		{"nothing pinned leading band", false, "b", 150, 20, tabstrip.DropPinnedZone},
		{"nothing pinned past band", false, "b", 150, 50, tabstrip.DropStrip},
		{"inside pinned region", true, "b", 190, 30, tabstrip.DropPinnedZone},
		{"past pinned region", true, "b", 190, 60, tabstrip.DropStrip},
		{"pinned dragged far out", true, "p", 10, 200, tabstrip.DropUnpinnedZone},
		{"pinned dragged nearby", true, "p", 10, 80, tabstrip.DropStrip},
	}

	for _, tc := range testCases {
		items := []tabstrip.Item{tabstrip.Tab{ID: "a"}, tabstrip.Tab{ID: "b"}}
		if tc.pinned {
			items = append([]tabstrip.Item{tabstrip.Tab{ID: "p", Pinned: true}}, items...)
		}
		s, ctl, _ := testStrip(t, items...)
		if err := ctl.Start(tc.drag, tc.press, nil); err != nil {
			t.Fatalf("%s: start: %v", tc.name, err)
		}
		if got := s.dropZone(f32.Pt(tc.at, 10), ctl); got != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestTabStrip_DropZoneDragToPinOff(t *testing.T) {
	s, ctl, _ := testStrip(t, tabstrip.Tab{ID: "a"}, tabstrip.Tab{ID: "b"})
	s.DragToPin = false
	if err := ctl.Start("b", 150, nil); err != nil {
		t.Fatal(err)
	}
	if got := s.dropZone(f32.Pt(20, 10), ctl); got != tabstrip.DropStrip {
		t.Errorf("expected %v, got %v", tabstrip.DropStrip, got)
	}
}

func TestTabStrip_PressCancelsStaleDrag(t *testing.T) {
	testCases := []struct {
		name     string
		dragging bool
		expected UIAction
	}{
		{"stale drag", true, ActionDragCancelled},
		{"idle", false, ActionNone},
	}

	for _, tc := range testCases {
		s, ctl, col := testStrip(t, tabstrip.Tab{ID: "a"}, tabstrip.Tab{ID: "b"})
		if tc.dragging {
			if err := ctl.Start("a", 50, nil); err != nil {
				t.Fatal(err)
			}
		}
		var evt UIEvent
		s.handleGesture(layout.Context{}, gestureEvent{Kind: gesturePress, Position: f32.Pt(150, 10)}, col, ctl, &evt)
		if evt.Action != tc.expected {
			t.Errorf("%s: expected action %d, got %d", tc.name, tc.expected, evt.Action)
		}
		if ctl.Active() {
			t.Errorf("%s: expected no drag after the press", tc.name)
		}
	}
}
