// Package replay runs recorded drag gestures through the drag controller
// without a window, for tuning thresholds and reproducing bug reports.
package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/tabdeck/internal/config"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// ErrBadTrace is returned for traces that cannot be replayed
var ErrBadTrace = errors.New("replay: bad trace")

// defaultSize is the strip extent of items that do not give one
const defaultSize = 100

// Trace is a strip, a drag over it and optionally what should come out
type Trace struct {
	Items      []TraceItem    `yaml:"items"`
	Active     string         `yaml:"active,omitempty"`
	Thresholds *TraceSettings `yaml:"thresholds,omitempty"`
	Drag       TraceDrag      `yaml:"drag"`
	Expect     *Expect        `yaml:"expect,omitempty"`
}

// TraceItem is one strip element. Kind is tab, group or split.
type TraceItem struct {
	Kind      string  `yaml:"kind"`
	ID        string  `yaml:"id"`
	Title     string  `yaml:"title,omitempty"`
	Pinned    bool    `yaml:"pinned,omitempty"`
	Group     string  `yaml:"group,omitempty"`
	Collapsed bool    `yaml:"collapsed,omitempty"`
	Size      float32 `yaml:"size,omitempty"`
}

// TraceSettings mirrors the dragDrop section of the config file
type TraceSettings struct {
	MoveOverPercent     int           `yaml:"moveOver,omitempty"`
	GroupOverlapPercent int           `yaml:"groupOverlap,omitempty"`
	GroupDelay          time.Duration `yaml:"groupDelay,omitempty"`
}

// TraceDrag is the gesture: press on Anchor at Start, then pointer samples
// relative to the press, then a drop or a cancel
type TraceDrag struct {
	Anchor    string   `yaml:"anchor"`
	Selection []string `yaml:"selection,omitempty"`
	Start     float32  `yaml:"start"`
	Samples   []Sample `yaml:"samples"`
	End       string   `yaml:"end"`              // drop or cancel
	Target    string   `yaml:"target,omitempty"` // strip, pinned-zone, unpinned-zone, new-window
	Copy      bool     `yaml:"copy,omitempty"`
}

// Sample is a pointer position at a time after the press
type Sample struct {
	At  time.Duration `yaml:"at"`
	Pos float32       `yaml:"pos"`
}

// Expect is checked by Check. Empty fields are not checked.
type Expect struct {
	Order    []string `yaml:"order,omitempty"`
	Outcome  string   `yaml:"outcome,omitempty"`
	Advisory string   `yaml:"advisory,omitempty"`
	Index    *int     `yaml:"index,omitempty"`
	Detached []string `yaml:"detached,omitempty"`
}

// Load reads a YAML trace
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML trace
func Parse(data []byte) (*Trace, error) {
	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}
	if len(tr.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrBadTrace)
	}
	if tr.Drag.Anchor == "" {
		return nil, fmt.Errorf("%w: no drag anchor", ErrBadTrace)
	}
	switch tr.Drag.End {
	case "", "drop", "cancel":
	default:
		return nil, fmt.Errorf("%w: drag end %q", ErrBadTrace, tr.Drag.End)
	}
	return &tr, nil
}

// Settings returns the trace's thresholds applied over the defaults
func (tr *Trace) Settings() config.DragDropConfig {
	d := config.DefaultConfig().DragDrop
	if s := tr.Thresholds; s != nil {
		if s.MoveOverPercent != 0 {
			d.MoveOverThresholdPercent = s.MoveOverPercent
		}
		if s.GroupOverlapPercent != 0 {
			d.GroupOverlapPercent = s.GroupOverlapPercent
		}
		if s.GroupDelay != 0 {
			d.CreateGroupDelayMS = int(s.GroupDelay / time.Millisecond)
		}
	}
	return d
}

// collection builds the strip and the size of every element
func (tr *Trace) collection() (*tabstrip.Collection, map[string]float32, error) {
	items := make([]tabstrip.Item, 0, len(tr.Items))
	sizes := make(map[string]float32, len(tr.Items))
	for _, ti := range tr.Items {
		var it tabstrip.Item
		switch ti.Kind {
		case "", "tab":
			it = tabstrip.Tab{ID: ti.ID, Title: ti.Title, Pinned: ti.Pinned, GroupID: ti.Group}
		case "group":
			it = tabstrip.GroupLabel{GroupID: ti.ID, Name: ti.Title, Collapsed: ti.Collapsed}
		case "split":
			it = tabstrip.SplitView{
				ID:      ti.ID,
				Left:    tabstrip.Tab{ID: ti.ID + "/left", Title: ti.Title},
				Right:   tabstrip.Tab{ID: ti.ID + "/right", Title: ti.Title},
				Pinned:  ti.Pinned,
				GroupID: ti.Group,
			}
		default:
			return nil, nil, fmt.Errorf("%w: item %s has kind %q", ErrBadTrace, ti.ID, ti.Kind)
		}
		size := ti.Size
		if size <= 0 {
			size = defaultSize
		}
		sizes[it.ItemID()] = size
		items = append(items, it)
	}
	col := tabstrip.NewCollection(items...)
	if err := col.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}
	col.SetActive(tr.Active)
	return col, sizes, nil
}

// itemID maps a trace ID to a strip ID. Groups are named by their group ID
// in traces.
func (tr *Trace) itemID(id string) string {
	for _, ti := range tr.Items {
		if ti.ID == id && ti.Kind == "group" {
			return tabstrip.GroupLabel{GroupID: id}.ItemID()
		}
	}
	return id
}

func parseTarget(s string) (tabstrip.DropTarget, error) {
	for _, t := range []tabstrip.DropTarget{
		tabstrip.DropStrip, tabstrip.DropPinnedZone, tabstrip.DropUnpinnedZone, tabstrip.DropNewWindow,
	} {
		if s == t.String() {
			return t, nil
		}
	}
	if s == "" {
		return tabstrip.DropStrip, nil
	}
	return 0, fmt.Errorf("%w: drop target %q", ErrBadTrace, s)
}
