package replay

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// epoch anchors trace times so replays are deterministic
var epoch = time.Unix(1700000000, 0)

// Step is the resolution after one pointer sample
type Step struct {
	At       time.Duration `yaml:"at"`
	Pos      float32       `yaml:"pos"`
	Index    int           `yaml:"index"`
	Slot     int           `yaml:"slot"`
	Target   string        `yaml:"target,omitempty"`
	Before   bool          `yaml:"before,omitempty"`
	Group    string        `yaml:"group,omitempty"`
	Advisory string        `yaml:"advisory"`
	// Translate is the block's displacement from where the drag started
	Translate float32 `yaml:"translate"`
	Forward   bool    `yaml:"forward,omitempty"`
	// Offsets are the non-zero element offsets after the sample
	Offsets map[string]float32 `yaml:"offsets,omitempty"`
}

// Report is what a replay produced
type Report struct {
	Thresholds tabstrip.Thresholds `yaml:"-"`
	Steps      []Step              `yaml:"steps"`
	Outcome    string              `yaml:"outcome"`
	Error      string              `yaml:"error,omitempty"`
	Order      []string            `yaml:"order"`
	Detached   []string            `yaml:"detached,omitempty"`
	// Offsets left behind after the drag ended. Always empty unless cleanup
	// is broken.
	Offsets map[string]float32 `yaml:"offsets,omitempty"`
	// SinkCalls counts offset updates sent to the layout
	SinkCalls int `yaml:"sinkCalls"`
}

// Advisory returns the advisory of the last step
func (r *Report) Advisory() string {
	if len(r.Steps) == 0 {
		return tabstrip.AdvisoryNone.String()
	}
	return r.Steps[len(r.Steps)-1].Advisory
}

// recordingSink stores the latest offset of every element
type recordingSink struct {
	offsets map[string]float32
	calls   int
}

func (s *recordingSink) SetOffset(id string, off float32) {
	s.calls++
	if off == 0 {
		delete(s.offsets, id)
		return
	}
	s.offsets[id] = off
}

func (s *recordingSink) snapshot() map[string]float32 {
	if len(s.offsets) == 0 {
		return nil
	}
	out := make(map[string]float32, len(s.offsets))
	for k, v := range s.offsets {
		out[k] = v
	}
	return out
}

// Run replays tr with th. The strip lays its visible elements out edge to
// edge from 0 using the trace's sizes.
func Run(tr *Trace, th tabstrip.Thresholds) (*Report, error) {
	col, sizes, err := tr.collection()
	if err != nil {
		return nil, err
	}
	target, err := parseTarget(tr.Drag.Target)
	if err != nil {
		return nil, err
	}

	geom := tabstrip.GeometryFunc(func() []tabstrip.Slot {
		var out []tabstrip.Slot
		var pos float32
		for i, it := range col.Visible() {
			size := sizes[it.ItemID()]
			out = append(out, tabstrip.Slot{Item: it, Index: i, Span: tabstrip.Span{Pos: pos, Size: size}})
			pos += size
		}
		return out
	})
	sink := &recordingSink{offsets: make(map[string]float32)}
	ctl := tabstrip.NewController(col, geom, sink, th)

	selection := make([]string, len(tr.Drag.Selection))
	for i, id := range tr.Drag.Selection {
		selection[i] = tr.itemID(id)
	}
	if err := ctl.Start(tr.itemID(tr.Drag.Anchor), tr.Drag.Start, selection); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}

	rep := &Report{Thresholds: ctl.Thresholds()}
	samples := slices.Clone(tr.Drag.Samples)
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].At < samples[j].At })
	for _, smp := range samples {
		now := epoch.Add(smp.At)
		ctl.Tick(now)
		res := ctl.Move(smp.Pos, now)
		// A pending advisory may also come due on a repeated sample
		if ctl.Tick(now) {
			res = ctl.Session().Result
		}
		rep.Steps = append(rep.Steps, step(smp, ctl.Session(), res, sink.snapshot()))
	}

	if tr.Drag.End == "cancel" {
		ctl.Cancel()
		rep.Outcome = "cancelled"
	} else {
		out, err := ctl.Drop(target, tr.Drag.Copy)
		rep.Outcome = out.Kind.String()
		if err != nil {
			rep.Error = err.Error()
		}
		if out.Kind == tabstrip.OutcomeDetached {
			for _, it := range out.Items {
				rep.Detached = append(rep.Detached, it.ItemID())
			}
		}
	}
	rep.Order = col.IDs()
	rep.Offsets = sink.snapshot()
	rep.SinkCalls = sink.calls
	debug.Log(debug.DRAG, "Replay: %d samples outcome=%s order=%s",
		len(rep.Steps), rep.Outcome, strings.Join(rep.Order, ","))
	return rep, nil
}

func step(smp Sample, sess *tabstrip.Session, res tabstrip.Resolution, offsets map[string]float32) Step {
	st := Step{
		At:        smp.At,
		Pos:       smp.Pos,
		Index:     res.Index,
		Slot:      res.Slot,
		Before:    res.Before,
		Group:     res.Group,
		Advisory:  res.Advisory.String(),
		Translate: sess.Translate(),
		Forward:   sess.Forward(),
		Offsets:   offsets,
	}
	if res.Target != nil {
		st.Target = res.Target.ItemID()
	}
	return st
}

// Check compares a report with the trace's expect block and returns one
// message per mismatch
func Check(tr *Trace, rep *Report) []string {
	e := tr.Expect
	if e == nil {
		return nil
	}
	var bad []string
	if len(e.Order) > 0 {
		want := make([]string, len(e.Order))
		for i, id := range e.Order {
			want[i] = tr.itemID(id)
		}
		if !slices.Equal(want, rep.Order) {
			bad = append(bad, fmt.Sprintf("order: expected %s, got %s",
				strings.Join(want, ","), strings.Join(rep.Order, ",")))
		}
	}
	if e.Outcome != "" && e.Outcome != rep.Outcome {
		bad = append(bad, fmt.Sprintf("outcome: expected %s, got %s", e.Outcome, rep.Outcome))
	}
	if e.Advisory != "" && e.Advisory != rep.Advisory() {
		bad = append(bad, fmt.Sprintf("advisory: expected %s, got %s", e.Advisory, rep.Advisory()))
	}
	if e.Index != nil {
		got := -1
		if len(rep.Steps) > 0 {
			got = rep.Steps[len(rep.Steps)-1].Index
		}
		if got != *e.Index {
			bad = append(bad, fmt.Sprintf("index: expected %d, got %d", *e.Index, got))
		}
	}
	if len(e.Detached) > 0 && !slices.Equal(e.Detached, rep.Detached) {
		bad = append(bad, fmt.Sprintf("detached: expected %s, got %s",
			strings.Join(e.Detached, ","), strings.Join(rep.Detached, ",")))
	}
	if len(rep.Offsets) > 0 {
		bad = append(bad, fmt.Sprintf("offsets left after the drag: %v", rep.Offsets))
	}
	return bad
}
