package ui

import (
	"testing"
	"time"
)

func testAnimator(d time.Duration) (*OffsetAnimator, *time.Time) {
	now := time.Unix(1700000000, 0)
	a := NewOffsetAnimator(d)
	a.Now = func() time.Time { return now }
	return a, &now
}

func TestOffsetAnimator_Eases(t *testing.T) {
	a, now := testAnimator(100 * time.Millisecond)
	a.SetOffset("b", -100)

	if got := a.Value("b", *now); got != 0 {
		t.Errorf("expected 0 at start, got %v", got)
	}
	mid := a.Value("b", now.Add(50*time.Millisecond))
	if mid >= 0 || mid <= -100 {
		t.Errorf("expected value between 0 and -100, got %v", mid)
	}
	if !a.Animating(now.Add(50 * time.Millisecond)) {
		t.Errorf("expected animating halfway")
	}
	if got := a.Value("b", now.Add(time.Second)); got != -100 {
		t.Errorf("expected -100 at the end, got %v", got)
	}
	if a.Animating(now.Add(time.Second)) {
		t.Errorf("expected animation finished")
	}
}

func TestOffsetAnimator_Jumps(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(a *OffsetAnimator)
	}{
		{"reduce motion", func(a *OffsetAnimator) { a.ReduceMotion = true }},
		{"zero duration", func(a *OffsetAnimator) { a.Duration = 0 }},
		{"follows pointer", func(a *OffsetAnimator) { a.Follow("b") }},
	}

	for _, tc := range testCases {
		a, now := testAnimator(100 * time.Millisecond)
		tc.setup(a)
		a.SetOffset("b", 40)
		if got := a.Value("b", *now); got != 40 {
			t.Errorf("%s: expected 40 immediately, got %v", tc.name, got)
		}
	}
}

func TestOffsetAnimator_Retarget(t *testing.T) {
	a, now := testAnimator(100 * time.Millisecond)
	a.SetOffset("b", 100)
	*now = now.Add(time.Second)
	a.SetOffset("b", 0)

	// Starts from where it was, not from zero
	if got := a.Value("b", *now); got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
	a.Snap()
	if got := a.Value("b", *now); got != 0 {
		t.Errorf("expected 0 after snap, got %v", got)
	}
	if len(a.anims) != 0 {
		t.Errorf("expected resting items forgotten, got %d", len(a.anims))
	}
}

func TestOffsetAnimator_ZeroAtRest(t *testing.T) {
	a, _ := testAnimator(100 * time.Millisecond)
	a.SetOffset("b", 0)
	if len(a.anims) != 0 {
		t.Errorf("expected no entry for a resting item")
	}
}

func TestOffsetAnimator_Clear(t *testing.T) {
	a, now := testAnimator(100 * time.Millisecond)
	a.Follow("a")
	a.SetOffset("a", 40)
	a.SetOffset("b", -100)
	a.Clear()

	for _, id := range []string{"a", "b"} {
		if got := a.Value(id, now.Add(50*time.Millisecond)); got != 0 {
			t.Errorf("expected %s at 0 after clear, got %v", id, got)
		}
	}
	if a.Animating(*now) {
		t.Errorf("expected nothing animating after clear")
	}
	// Followed ids are forgotten too, so the next change eases
	a.SetOffset("a", 40)
	if got := a.Value("a", *now); got != 0 {
		t.Errorf("expected a to ease from 0, got %v", got)
	}
}
