package app

import (
	"fmt"

	"github.com/justyntemme/tabdeck/internal/store"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// snapshot converts a window's strip into the store's plain records
func snapshot(window string, col *tabstrip.Collection) *store.Session {
	s := &store.Session{Window: window, Active: col.Active()}
	for _, it := range col.Items() {
		switch v := it.(type) {
		case tabstrip.Tab:
			s.Items = append(s.Items, store.Record{
				Kind: store.KindTab, ID: v.ID, Title: v.Title, Path: v.Path,
				Pinned: v.Pinned, GroupID: v.GroupID,
			})
		case tabstrip.GroupLabel:
			s.Items = append(s.Items, store.Record{
				Kind: store.KindGroup, ID: v.GroupID, Name: v.Name,
				Color: v.Color, Collapsed: v.Collapsed,
			})
		case tabstrip.SplitView:
			s.Items = append(s.Items, store.Record{
				Kind: store.KindSplit, ID: v.ID, Pinned: v.Pinned, GroupID: v.GroupID,
				LeftID: v.Left.ID, Title: v.Left.Title, Path: v.Left.Path,
				RightID: v.Right.ID, RightTitle: v.Right.Title, RightPath: v.Right.Path,
			})
		}
	}
	return s
}

// restore rebuilds a collection from stored records. A session that breaks
// the strip's ordering rules is rejected rather than partially shown.
func restore(s *store.Session) (*tabstrip.Collection, error) {
	items := make([]tabstrip.Item, 0, len(s.Items))
	for _, r := range s.Items {
		switch r.Kind {
		case store.KindTab:
			items = append(items, tabstrip.Tab{
				ID: r.ID, Title: r.Title, Path: r.Path, Pinned: r.Pinned, GroupID: r.GroupID,
			})
		case store.KindGroup:
			items = append(items, tabstrip.GroupLabel{
				GroupID: r.ID, Name: r.Name, Color: r.Color, Collapsed: r.Collapsed,
			})
		case store.KindSplit:
			items = append(items, tabstrip.SplitView{
				ID:      r.ID,
				Left:    tabstrip.Tab{ID: r.LeftID, Title: r.Title, Path: r.Path},
				Right:   tabstrip.Tab{ID: r.RightID, Title: r.RightTitle, Path: r.RightPath},
				Pinned:  r.Pinned,
				GroupID: r.GroupID,
			})
		default:
			return nil, fmt.Errorf("restore %s: unknown record kind %q", s.Window, r.Kind)
		}
	}
	col := tabstrip.NewCollection(items...)
	if err := col.Validate(); err != nil {
		return nil, fmt.Errorf("restore %s: %w", s.Window, err)
	}
	col.SetActive(s.Active)
	return col, nil
}
