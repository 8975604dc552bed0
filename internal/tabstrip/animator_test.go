package tabstrip

import "testing"

func TestAnimator_ApplyIsIdempotent(t *testing.T) {
	sink := newRecordSink()
	a := NewAnimator(sink)
	targets := map[string]float32{"a": 10, "b": -100}

	a.Apply(targets)
	calls := sink.calls
	a.Apply(targets)
	if sink.calls != calls {
		t.Errorf("expected no sink calls on re-apply, got %d", sink.calls-calls)
	}
	if a.Applied() != 2 {
		t.Errorf("expected 2 applied offsets, got %d", a.Applied())
	}
}

func TestAnimator_ClearsLeftoverOffsets(t *testing.T) {
	sink := newRecordSink()
	a := NewAnimator(sink)
	a.Apply(map[string]float32{"a": 10, "b": -100})
	a.Apply(map[string]float32{"c": 50, "b": 0})

	if _, ok := sink.offsets["a"]; ok {
		t.Errorf("expected a cleared")
	}
	if _, ok := sink.offsets["b"]; ok {
		t.Errorf("expected b cleared")
	}
	if sink.offsets["c"] != 50 {
		t.Errorf("expected c at 50, got %v", sink.offsets["c"])
	}
}

func TestAnimator_Reset(t *testing.T) {
	sink := newRecordSink()
	a := NewAnimator(sink)
	a.Apply(map[string]float32{"a": 10, "b": -100})
	a.Reset()
	if len(sink.offsets) != 0 || a.Applied() != 0 {
		t.Errorf("expected every offset cleared, got %v", sink.offsets)
	}
	a.Reset()
}

func TestShift(t *testing.T) {
	testCases := []struct {
		i, home, slot int
		expected      float32
	}{
		{0, 2, 2, 0},
		{2, 2, 3, -100},
		{3, 2, 3, 0},
		{0, 2, 0, 100},
		{1, 2, 0, 100},
		{2, 2, 0, 0},
	}

	for _, tc := range testCases {
		if got := Shift(tc.i, tc.home, tc.slot, 100); got != tc.expected {
			t.Errorf("Shift(%d,%d,%d): expected %v, got %v", tc.i, tc.home, tc.slot, tc.expected, got)
		}
	}
}
