package tabstrip

import (
	"strings"
	"testing"
	"time"
)

// recordSink keeps the last offset set for each id
type recordSink struct {
	offsets map[string]float32
	calls   int
}

func newRecordSink() *recordSink {
	return &recordSink{offsets: make(map[string]float32)}
}

func (r *recordSink) SetOffset(id string, off float32) {
	r.calls++
	if off == 0 {
		delete(r.offsets, id)
		return
	}
	r.offsets[id] = off
}

func tabs(ids ...string) []Item {
	out := make([]Item, len(ids))
	for i, id := range ids {
		out[i] = Tab{ID: id, Title: strings.ToUpper(id)}
	}
	return out
}

// stripGeometry lays out the visible items of c edge to edge, each width wide
func stripGeometry(c **Collection, width float32) Geometry {
	return GeometryFunc(func() []Slot {
		var out []Slot
		var pos float32
		for i, it := range (*c).Visible() {
			out = append(out, Slot{Item: it, Index: i, Span: Span{Pos: pos, Size: width}})
			pos += width
		}
		return out
	})
}

type harness struct {
	col  *Collection
	sink *recordSink
	ctl  *Controller
	now  time.Time
}

func newHarness(th Thresholds, items ...Item) *harness {
	h := &harness{
		col:  NewCollection(items...),
		sink: newRecordSink(),
		now:  time.Unix(1700000000, 0),
	}
	h.ctl = NewController(h.col, stripGeometry(&h.col, 100), h.sink, th)
	return h
}

func (h *harness) move(p float32) Resolution {
	h.now = h.now.Add(16 * time.Millisecond)
	return h.ctl.Move(p, h.now)
}

func (h *harness) order() string {
	return strings.Join(h.col.IDs(), ",")
}

func mustStart(t *testing.T, h *harness, anchor string, pointer float32, selection ...string) {
	t.Helper()
	if err := h.ctl.Start(anchor, pointer, selection); err != nil {
		t.Fatalf("start %s: %v", anchor, err)
	}
}
