package ui

import (
	"image"
	"image/color"
	"math"
	"path/filepath"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// TabStrip draws a tab collection along one axis and turns pointer input
// into drag controller calls. It is also the controller's geometry source:
// Slots returns the spans recorded by the last layout.
type TabStrip struct {
	Theme    *material.Theme
	Vertical bool

	TabMinWidth    unit.Dp
	TabMaxWidth    unit.Dp
	PinnedTabWidth unit.Dp
	TabHeight      unit.Dp
	DetachDistance unit.Dp
	AllowDetach    bool
	DragToPin      bool

	Offsets  *OffsetAnimator
	Previews *PreviewCache

	gesture   stripGesture
	slots     []tabstrip.Slot
	extent    image.Point
	pinnedEnd float32 // main axis end of the pinned region
	detachPx  float32
	pinnedPx  float32

	selected  map[string]bool
	closeBtns map[string]*widget.Clickable
	newTabBtn widget.Clickable

	zone tabstrip.DropTarget // where a release would drop right now
}

// NewTabStrip creates a strip drawing with th and rendering offsets from
// offsets, which must also be the drag controller's layout sink.
func NewTabStrip(th *material.Theme, offsets *OffsetAnimator) *TabStrip {
	return &TabStrip{
		Theme:          th,
		TabMinWidth:    76,
		TabMaxWidth:    225,
		PinnedTabWidth: 36,
		TabHeight:      32,
		DetachDistance: 60,
		AllowDetach:    true,
		DragToPin:      true,
		Offsets:        offsets,
		selected:       make(map[string]bool),
		closeBtns:      make(map[string]*widget.Clickable),
	}
}

// Slots implements tabstrip.Geometry
func (s *TabStrip) Slots() []tabstrip.Slot {
	return s.slots
}

// Selection returns the multi-selected elements in strip order
func (s *TabStrip) Selection() []string {
	var out []string
	for _, sl := range s.slots {
		if id := sl.Item.ItemID(); s.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// ClearSelection drops the multi-selection
func (s *TabStrip) ClearSelection() {
	s.selected = make(map[string]bool)
}

// CancelDrag abandons a drag in progress. It reports whether one was active.
func (s *TabStrip) CancelDrag(ctl *tabstrip.Controller) bool {
	if !ctl.Active() {
		return false
	}
	s.Offsets.Follow()
	ctl.Cancel()
	s.zone = tabstrip.DropStrip
	return true
}

func (s *TabStrip) mainPos(p f32.Point) float32 {
	if s.Vertical {
		return p.Y
	}
	return p.X
}

// AxisPos returns the main axis coordinate of a window pixel position.
// The strip starts at the window's leading edge along its axis.
func (s *TabStrip) AxisPos(at image.Point) float32 {
	return s.mainPos(layout.FPt(at))
}

func (s *TabStrip) crossPos(p f32.Point) float32 {
	if s.Vertical {
		return p.X
	}
	return p.Y
}

func (s *TabStrip) hitTest(p float32) (tabstrip.Slot, bool) {
	for _, sl := range s.slots {
		if sl.Span.Contains(p) {
			return sl, true
		}
	}
	return tabstrip.Slot{}, false
}

// Layout draws the strip and reports at most one user action in eventOut
func (s *TabStrip) Layout(gtx layout.Context, col *tabstrip.Collection, ctl *tabstrip.Controller, eventOut *UIEvent) layout.Dimensions {
	s.detachPx = float32(gtx.Dp(s.DetachDistance))
	s.pinnedPx = float32(gtx.Dp(s.PinnedTabWidth))

	// A click on a close button must not also switch tabs
	closing := false
	for id, btn := range s.closeBtns {
		if btn.Clicked(gtx) {
			*eventOut = UIEvent{Action: ActionCloseTab, ID: id}
			closing = true
		}
	}
	if s.newTabBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionNewTab}
	}
	for _, ge := range s.gesture.Update(gtx) {
		if closing && ge.Kind == gestureClick {
			continue
		}
		s.handleGesture(gtx, ge, col, ctl, eventOut)
	}

	// Grouping suggestions wait for a deadline rather than a timer
	if ctl.Tick(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}
	if deadline, ok := ctl.Deadline(); ok {
		gtx.Execute(op.InvalidateCmd{At: deadline})
	}

	dims := s.layoutItems(gtx, col, ctl)
	if s.Offsets.Animating(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}
	return dims
}

func (s *TabStrip) handleGesture(gtx layout.Context, ge gestureEvent, col *tabstrip.Collection, ctl *tabstrip.Controller, eventOut *UIEvent) {
	p := s.mainPos(ge.Position)
	switch ge.Kind {
	case gestureClick:
		sl, ok := s.hitTest(p)
		if !ok {
			return
		}
		id := sl.Item.ItemID()
		if g, isLabel := sl.Item.(tabstrip.GroupLabel); isLabel {
			*eventOut = UIEvent{Action: ActionToggleGroup, ID: g.GroupID}
			return
		}
		if ge.Modifiers.Contain(key.ModShortcut) {
			if s.selected[id] {
				delete(s.selected, id)
			} else {
				s.selected[id] = true
			}
			debug.Log(debug.UI_EVENT, "Selection: %v", s.Selection())
			return
		}
		s.ClearSelection()
		if ge.NumClicks >= 2 {
			*eventOut = UIEvent{Action: ActionOpenTab, ID: id}
			return
		}
		if id != col.Active() {
			*eventOut = UIEvent{Action: ActionSwitchTab, ID: id}
		}

	case gesturePress:
		// A drag still active at the next press lost its release
		if s.CancelDrag(ctl) {
			debug.Log(debug.DRAG, "Press during drag, cancelled")
			*eventOut = UIEvent{Action: ActionDragCancelled}
		}

	case gestureDragStart:
		press := s.mainPos(s.gesture.pressPos)
		sl, ok := s.hitTest(press)
		if !ok {
			return
		}
		anchor := sl.Item.ItemID()
		var selection []string
		if s.selected[anchor] {
			selection = s.Selection()
		}
		if err := ctl.Start(anchor, press, selection); err != nil {
			debug.Log(debug.DRAG, "Start %s: %v", anchor, err)
			return
		}
		s.Offsets.Follow(ctl.Session().MovingIDs()...)
		ctl.Move(p, gtx.Now)
		s.zone = s.dropZone(ge.Position, ctl)

	case gestureDragMove:
		if !ctl.Active() {
			return
		}
		ctl.Move(p, gtx.Now)
		s.zone = s.dropZone(ge.Position, ctl)

	case gestureRelease:
		if !ctl.Active() {
			return
		}
		ctl.Move(p, gtx.Now)
		target := s.dropZone(ge.Position, ctl)
		copyItems := ge.Modifiers.Contain(key.ModCtrl) || ge.Modifiers.Contain(key.ModAlt)
		s.Offsets.Follow()
		out, err := ctl.Drop(target, copyItems)
		if out.Kind != tabstrip.OutcomeNone {
			// The new layout already puts everything in place
			s.Offsets.Snap()
			s.ClearSelection()
		}
		s.zone = tabstrip.DropStrip
		*eventOut = UIEvent{Action: ActionDropped, Outcome: out, Err: err}

	case gestureCancel:
		if s.CancelDrag(ctl) {
			*eventOut = UIEvent{Action: ActionDragCancelled}
		}
	}
}

// dropZone classifies a pointer position for the drag in progress
func (s *TabStrip) dropZone(pos f32.Point, ctl *tabstrip.Controller) tabstrip.DropTarget {
	cross := s.crossPos(pos)
	thickness := float32(s.extent.Y)
	if s.Vertical {
		thickness = float32(s.extent.X)
	}
	if s.AllowDetach && (cross < -s.detachPx || cross > thickness+s.detachPx) {
		return tabstrip.DropNewWindow
	}

	sess := ctl.Session()
	if !s.DragToPin || sess == nil || sess.GroupDrag {
		return tabstrip.DropStrip
	}
	p := s.mainPos(pos)
	switch {
	case !sess.Pinned && p < s.pinZoneEnd():
		return tabstrip.DropPinnedZone
	case sess.Pinned && p > s.pinnedEnd+2*s.pinnedPx:
		return tabstrip.DropUnpinnedZone
	}
	return tabstrip.DropStrip
}

// pinZoneEnd is where the pinned drop zone ends. With nothing pinned it is
// a leading band one pinned tab wide.
func (s *TabStrip) pinZoneEnd() float32 {
	return max(s.pinnedEnd, s.pinnedPx)
}

// measure returns the main axis size of every visible element
func (s *TabStrip) measure(gtx layout.Context, visible []tabstrip.Item) []float32 {
	sizes := make([]float32, len(visible))
	if s.Vertical {
		for i := range visible {
			sizes[i] = float32(gtx.Dp(s.TabHeight))
		}
		return sizes
	}

	minW, maxW := gtx.Dp(s.TabMinWidth), gtx.Dp(s.TabMaxWidth)
	pinned := gtx.Dp(s.PinnedTabWidth)
	tabWidth := func(title string) int {
		w := s.textWidth(gtx, title) + gtx.Dp(16) + gtx.Dp(28)
		return min(max(w, minW), maxW)
	}
	for i, it := range visible {
		var w int
		switch v := it.(type) {
		case tabstrip.Tab:
			w = tabWidth(tabTitle(v))
			if v.Pinned {
				w = pinned
			}
		case tabstrip.SplitView:
			w = tabWidth(tabTitle(v.Left)) + tabWidth(tabTitle(v.Right))
			if v.Pinned {
				w = 2 * pinned
			}
		case tabstrip.GroupLabel:
			w = gtx.Dp(20)
			if v.Name != "" {
				w = min(s.textWidth(gtx, v.Name)+gtx.Dp(20), maxW)
			}
		}
		sizes[i] = float32(w)
	}
	return sizes
}

func (s *TabStrip) textWidth(gtx layout.Context, txt string) int {
	gtx.Constraints.Min = image.Point{}
	lbl := material.Body2(s.Theme, txt)
	lbl.MaxLines = 1
	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	macro.Stop()
	return dims.Size.X
}

func initial(title string) string {
	for _, r := range title {
		return string(r)
	}
	return ""
}

func tabTitle(t tabstrip.Tab) string {
	switch {
	case t.Title != "":
		return t.Title
	case t.Path != "":
		return filepath.Base(t.Path)
	}
	return "New Tab"
}

func (s *TabStrip) layoutItems(gtx layout.Context, col *tabstrip.Collection, ctl *tabstrip.Controller) layout.Dimensions {
	visible := col.Visible()
	sizes := s.measure(gtx, visible)

	thickness := gtx.Dp(s.TabHeight)
	if s.Vertical {
		thickness = min(gtx.Dp(s.TabMaxWidth), gtx.Constraints.Max.X)
	}

	// New slice every frame: a drag session may still hold the old one
	slots := make([]tabstrip.Slot, len(visible))
	var pos float32
	s.pinnedEnd = 0
	for i, it := range visible {
		slots[i] = tabstrip.Slot{Item: it, Index: i, Span: tabstrip.Span{Pos: pos, Size: sizes[i]}}
		pos += sizes[i]
		if tabstrip.IsPinned(it) {
			s.pinnedEnd = pos
		}
	}
	s.slots = slots

	newBtn := gtx.Dp(28)
	length := max(int(math.Ceil(float64(pos)))+newBtn, gtx.Constraints.Min.X)
	s.extent = s.point(length, thickness)

	paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: s.extent}.Op())
	if ctl.Active() {
		switch s.zone {
		case tabstrip.DropNewWindow:
			paint.FillShape(gtx.Ops, colDetachHint, clip.Rect{Max: s.extent}.Op())
		case tabstrip.DropPinnedZone:
			paint.FillShape(gtx.Ops, colPinnedZone, clip.Rect{Max: s.point(int(s.pinZoneEnd()), thickness)}.Op())
		}
	}

	area := clip.Rect{Max: s.extent}.Push(gtx.Ops)
	s.gesture.Add(gtx.Ops)
	if s.gesture.Dragging() {
		pointer.CursorGrabbing.Add(gtx.Ops)
	}

	moving := make(map[string]bool)
	var res tabstrip.Resolution
	sess := ctl.Session()
	if sess != nil {
		for _, id := range sess.MovingIDs() {
			moving[id] = true
		}
		res = sess.Result
	}
	advisory := ""
	if res.Advisory != tabstrip.AdvisoryNone && res.AdvisoryTarget != nil {
		advisory = res.AdvisoryTarget.ItemID()
	}

	seen := make(map[string]bool, len(slots))
	// Non-dragged elements first so the dragged block draws on top
	for _, sl := range slots {
		id := sl.Item.ItemID()
		seen[id] = true
		if moving[id] {
			continue
		}
		s.layoutSlot(gtx, col, sl, thickness, id == advisory, false)
	}
	for _, sl := range slots {
		if !moving[sl.Item.ItemID()] {
			continue
		}
		rec := op.Record(gtx.Ops)
		s.layoutSlot(gtx, col, sl, thickness, false, true)
		op.Defer(gtx.Ops, rec.Stop())
	}
	area.Pop()

	for id := range s.closeBtns {
		if !seen[id] {
			delete(s.closeBtns, id)
		}
	}

	// New tab button after the last element
	btnStack := op.Offset(s.point(int(pos), 0)).Push(gtx.Ops)
	material.Clickable(gtx, &s.newTabBtn, func(gtx layout.Context) layout.Dimensions {
		size := image.Pt(newBtn, newBtn)
		if !s.Vertical {
			size.Y = thickness
		}
		drawPlus(gtx, size, colGray)
		return layout.Dimensions{Size: size}
	})
	btnStack.Pop()

	if sess != nil {
		s.layoutPreview(gtx, sess)
	}
	return layout.Dimensions{Size: s.extent}
}

// point builds a point from main and cross axis values
func (s *TabStrip) point(main, cross int) image.Point {
	if s.Vertical {
		return image.Pt(cross, main)
	}
	return image.Pt(main, cross)
}

func (s *TabStrip) layoutSlot(gtx layout.Context, col *tabstrip.Collection, sl tabstrip.Slot, thickness int, highlight, dragged bool) {
	id := sl.Item.ItemID()
	off := s.Offsets.Value(id, gtx.Now)
	main := int(math.Round(float64(sl.Span.Pos + off)))
	defer op.Offset(s.point(main, 0)).Push(gtx.Ops).Pop()

	size := s.point(int(math.Round(float64(sl.Span.Size))), thickness)
	if dragged {
		paint.FillShape(gtx.Ops, colShadow, clip.Rect{Min: image.Pt(2, 2), Max: size.Add(image.Pt(2, 2))}.Op())
	}

	switch it := sl.Item.(type) {
	case tabstrip.Tab:
		s.drawTab(gtx, col, it, size, id == col.Active())
	case tabstrip.SplitView:
		s.drawSplit(gtx, col, it, size, id == col.Active())
	case tabstrip.GroupLabel:
		s.drawLabel(gtx, it, size)
	}
	if s.selected[id] {
		paint.FillShape(gtx.Ops, colSelected, clip.Stroke{Path: clip.Rect{Max: size}.Path(), Width: 2}.Op())
	}
	if highlight {
		paint.FillShape(gtx.Ops, colDropTarget, clip.Rect{Max: size}.Op())
		paint.FillShape(gtx.Ops, colAccent, clip.Stroke{Path: clip.Rect{Max: size}.Path(), Width: 2}.Op())
	}
}

func (s *TabStrip) drawTab(gtx layout.Context, col *tabstrip.Collection, t tabstrip.Tab, size image.Point, active bool) {
	bg := colSidebar
	if active {
		bg = colWhite
	}
	paint.FillShape(gtx.Ops, bg, clip.Rect{Max: size}.Op())

	// Border between tabs
	edge := clip.Rect{Min: image.Pt(size.X-1, 0), Max: size}
	if s.Vertical {
		edge = clip.Rect{Min: image.Pt(0, size.Y-1), Max: size}
	}
	paint.FillShape(gtx.Ops, colLightGray, edge.Op())

	if t.GroupID != "" {
		if l, ok := col.Label(t.GroupID); ok {
			s.drawGroupLine(gtx, size, groupColor(l.Color))
		}
	}

	title := tabTitle(t)
	if t.Pinned {
		// Pinned tabs only show their initial
		s.drawTitle(gtx, initial(title), image.Point{}, size, active, true)
		return
	}

	closeArea := gtx.Dp(28)
	s.drawTitle(gtx, title, image.Point{}, image.Pt(size.X-closeArea, size.Y), active, false)
	s.drawCloseButton(gtx, t.ID, image.Pt(size.X-closeArea, 0), image.Pt(closeArea, size.Y))
}

func (s *TabStrip) drawSplit(gtx layout.Context, col *tabstrip.Collection, v tabstrip.SplitView, size image.Point, active bool) {
	bg := colSidebar
	if active {
		bg = colWhite
	}
	paint.FillShape(gtx.Ops, bg, clip.Rect{Max: size}.Op())
	if v.GroupID != "" {
		if l, ok := col.Label(v.GroupID); ok {
			s.drawGroupLine(gtx, size, groupColor(l.Color))
		}
	}

	closeArea := 0
	if !v.Pinned {
		closeArea = gtx.Dp(28)
	}
	half := (size.X - closeArea) / 2
	left, right := tabTitle(v.Left), tabTitle(v.Right)
	if v.Pinned {
		left, right = initial(left), initial(right)
	}
	s.drawTitle(gtx, left, image.Point{}, image.Pt(half, size.Y), active, v.Pinned)
	s.drawTitle(gtx, right, image.Pt(half, 0), image.Pt(half, size.Y), active, v.Pinned)
	paint.FillShape(gtx.Ops, colSplitDivide, clip.Rect{
		Min: image.Pt(half, gtx.Dp(6)),
		Max: image.Pt(half+1, size.Y-gtx.Dp(6)),
	}.Op())
	if closeArea > 0 {
		s.drawCloseButton(gtx, v.ID, image.Pt(size.X-closeArea, 0), image.Pt(closeArea, size.Y))
	}
}

func (s *TabStrip) drawLabel(gtx layout.Context, g tabstrip.GroupLabel, size image.Point) {
	c := groupColor(g.Color)
	pad := gtx.Dp(4)
	rr := gtx.Dp(6)
	chip := image.Rect(pad, pad, size.X-pad, size.Y-pad)
	if g.Collapsed {
		paint.FillShape(gtx.Ops, c, clip.Stroke{Path: clip.RRect{Rect: chip, NE: rr, NW: rr, SE: rr, SW: rr}.Path(gtx.Ops), Width: 2}.Op())
	} else {
		paint.FillShape(gtx.Ops, c, clip.RRect{Rect: chip, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
	}
	if g.Name == "" {
		return
	}

	lbl := material.Body2(s.Theme, g.Name)
	lbl.MaxLines = 1
	lbl.Color = colWhite
	if g.Collapsed {
		lbl.Color = c
	}
	gtx.Constraints = layout.Exact(chip.Size())
	stack := op.Offset(chip.Min).Push(gtx.Ops)
	layout.Center.Layout(gtx, lbl.Layout)
	stack.Pop()
}

func (s *TabStrip) drawGroupLine(gtx layout.Context, size image.Point, c color.NRGBA) {
	thick := gtx.Dp(3)
	line := clip.Rect{Min: image.Pt(0, size.Y-thick), Max: size}
	if s.Vertical {
		line = clip.Rect{Max: image.Pt(thick, size.Y)}
	}
	paint.FillShape(gtx.Ops, c, line.Op())
}

// drawTitle draws txt vertically centered in the box of the given size at at
func (s *TabStrip) drawTitle(gtx layout.Context, txt string, at, size image.Point, active, center bool) {
	lbl := material.Body2(s.Theme, txt)
	lbl.Color = colBlack
	lbl.MaxLines = 1
	if active {
		lbl.Font.Weight = 600
	}
	inset := gtx.Dp(8)
	if center {
		inset = 0
	}
	gtx.Constraints = layout.Exact(image.Pt(max(size.X-inset, 0), size.Y))
	stack := op.Offset(at.Add(image.Pt(inset, 0))).Push(gtx.Ops)
	defer stack.Pop()
	if center {
		layout.Center.Layout(gtx, lbl.Layout)
		return
	}
	layout.W.Layout(gtx, lbl.Layout)
}

func (s *TabStrip) drawCloseButton(gtx layout.Context, id string, at, area image.Point) {
	btn, ok := s.closeBtns[id]
	if !ok {
		btn = new(widget.Clickable)
		s.closeBtns[id] = btn
	}
	closeSize := gtx.Dp(16)
	x := at.X + (area.X-closeSize)/2
	y := at.Y + (area.Y-closeSize)/2
	stack := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
	material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		// Draw X
		center := float32(closeSize) / 2
		arm := float32(closeSize) / 4
		var p clip.Path
		p.Begin(gtx.Ops)
		p.MoveTo(f32.Pt(center-arm, center-arm))
		p.LineTo(f32.Pt(center+arm, center+arm))
		p.MoveTo(f32.Pt(center+arm, center-arm))
		p.LineTo(f32.Pt(center-arm, center+arm))
		paint.FillShape(gtx.Ops, colGray, clip.Stroke{Path: p.End(), Width: 1.5}.Op())
		return layout.Dimensions{Size: image.Pt(closeSize, closeSize)}
	})
	stack.Pop()
}

func drawPlus(gtx layout.Context, size image.Point, c color.NRGBA) {
	cx, cy := float32(size.X)/2, float32(size.Y)/2
	arm := float32(gtx.Dp(6))
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(cx-arm, cy))
	p.LineTo(f32.Pt(cx+arm, cy))
	p.MoveTo(f32.Pt(cx, cy-arm))
	p.LineTo(f32.Pt(cx, cy+arm))
	paint.FillShape(gtx.Ops, c, clip.Stroke{Path: p.End(), Width: 1.5}.Op())
}

// layoutPreview draws the image preview of a dragged image tab next to the
// pointer
func (s *TabStrip) layoutPreview(gtx layout.Context, sess *tabstrip.Session) {
	if s.Previews == nil {
		return
	}
	t, ok := sess.Anchor().(tabstrip.Tab)
	if !ok || !Previewable(t.Path) {
		return
	}
	img, size, ok := s.Previews.Get(t.Path)
	if !ok {
		s.Previews.RequestLoad(t.Path)
		return
	}
	at := s.gesture.Pos().Round().Add(image.Pt(gtx.Dp(12), gtx.Dp(12)))
	rec := op.Record(gtx.Ops)
	stack := op.Offset(at).Push(gtx.Ops)
	paint.FillShape(gtx.Ops, colShadow, clip.Rect{Min: image.Pt(3, 3), Max: size.Add(image.Pt(3, 3))}.Op())
	clipStack := clip.Rect{Max: size}.Push(gtx.Ops)
	img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	clipStack.Pop()
	stack.Pop()
	op.Defer(gtx.Ops, rec.Stop())
}
