package replay

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

func mustLoad(t *testing.T, name string) *Trace {
	t.Helper()
	tr, err := Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return tr
}

func TestRun_Testdata(t *testing.T) {
	testCases := []struct {
		file    string
		outcome string
	}{
		{"reorder.yaml", "moved"},
		{"group.yaml", "grouped"},
		{"detach.yaml", "detached"},
		{"group_drag.yaml", "moved"},
	}

	for _, tc := range testCases {
		tr := mustLoad(t, tc.file)
		rep, err := Run(tr, tr.Settings().Thresholds())
		if err != nil {
			t.Fatalf("%s: %v", tc.file, err)
		}
		if rep.Outcome != tc.outcome {
			t.Errorf("%s: expected %s, got %s", tc.file, tc.outcome, rep.Outcome)
		}
		if bad := Check(tr, rep); len(bad) > 0 {
			t.Errorf("%s: %s", tc.file, strings.Join(bad, "; "))
		}
	}
}

func TestRun_RecordsOffsets(t *testing.T) {
	tr := mustLoad(t, "reorder.yaml")
	rep, err := Run(tr, tabstrip.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(rep.Steps))
	}
	last := rep.Steps[1]
	if last.Offsets["d"] != -100 || last.Offsets["c"] != 60 {
		t.Errorf("expected d at -100 and c at 60, got %v", last.Offsets)
	}
	if last.Translate != 60 || !last.Forward {
		t.Errorf("expected translate 60 moving forward, got %.1f forward=%v", last.Translate, last.Forward)
	}
	if rep.Steps[0].Index != 2 {
		t.Errorf("expected first step at index 2, got %d", rep.Steps[0].Index)
	}
	if len(rep.Offsets) != 0 {
		t.Errorf("expected offsets cleared after drop, got %v", rep.Offsets)
	}
	if rep.SinkCalls == 0 {
		t.Errorf("expected sink updates")
	}
}

func TestRun_Cancel(t *testing.T) {
	tr := mustLoad(t, "reorder.yaml")
	tr.Drag.End = "cancel"
	rep, err := Run(tr, tabstrip.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Outcome != "cancelled" {
		t.Errorf("expected cancelled, got %s", rep.Outcome)
	}
	if got := strings.Join(rep.Order, ","); got != "a,b,c,d,e" {
		t.Errorf("expected order unchanged, got %s", got)
	}
	if bad := Check(tr, rep); len(bad) == 0 {
		t.Errorf("expected the moved expectation to fail after a cancel")
	}
}

func TestRun_HigherThresholdHoldsBack(t *testing.T) {
	tr := mustLoad(t, "reorder.yaml")
	tr.Thresholds = &TraceSettings{MoveOverPercent: 70}
	rep, err := Run(tr, tr.Settings().Thresholds())
	if err != nil {
		t.Fatal(err)
	}
	// 60% overlap no longer passes d
	if got := rep.Steps[1].Index; got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
	if rep.Outcome != "none" {
		t.Errorf("expected none, got %s", rep.Outcome)
	}
}

func TestParse_Rejects(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"no items", "drag: {anchor: a}"},
		{"no anchor", "items: [{id: a}]"},
		{"bad end", "items: [{id: a}]\ndrag: {anchor: a, end: fling}"},
		{"not yaml", "items: [\n"},
	}

	for _, tc := range testCases {
		if _, err := Parse([]byte(tc.yaml)); !errors.Is(err, ErrBadTrace) {
			t.Errorf("%s: expected ErrBadTrace, got %v", tc.name, err)
		}
	}
}

func TestRun_BadTrace(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown anchor", "items: [{id: a}]\ndrag: {anchor: zz}"},
		{"unknown kind", "items: [{id: a, kind: window}]\ndrag: {anchor: a}"},
		{"bad target", "items: [{id: a}, {id: b}]\ndrag: {anchor: a, target: moon}"},
		{"member before label", "items: [{id: a, group: g}, {id: g, kind: group}]\ndrag: {anchor: a}"},
	}

	for _, tc := range testCases {
		tr, err := Parse([]byte(tc.yaml))
		if err != nil {
			t.Fatalf("%s: parse: %v", tc.name, err)
		}
		if _, err := Run(tr, tabstrip.DefaultThresholds()); !errors.Is(err, ErrBadTrace) {
			t.Errorf("%s: expected ErrBadTrace, got %v", tc.name, err)
		}
	}
}
