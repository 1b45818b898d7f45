package gesture

const (
	MinSidebarWidth = 200.0
	MaxSidebarWidth = 500.0
	MinEditorRatio  = 0.1
	MaxEditorRatio  = 0.9
	// HorizontalBreakpoint is the viewport width at which editor and preview
	// sit side by side instead of stacked.
	HorizontalBreakpoint = 1024.0
)

// Rect is a container's bounding box in pointer coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Horizontal reports whether the split runs left-to-right for a viewport of
// the given width.
func Horizontal(viewportWidth float64) bool { return viewportWidth >= HorizontalBreakpoint }

// BeginSidebarResize drags the sidebar edge. Widths outside [200, 500] are
// ignored rather than clamped, so the edge stops where the pointer left
// the range.
func (t *Tracker) BeginSidebarResize(startX, startWidth float64, apply func(width float64)) (*Session, error) {
	return t.Begin(KindSidebar, CursorColResize, nil, func(x, _ float64) {
		w := startWidth + x - startX
		if w >= MinSidebarWidth && w <= MaxSidebarWidth {
			apply(w)
		}
	})
}

// BeginSplitResize drags the editor/preview divider inside container.
// freeze runs before the session starts so the preview zoom is pinned
// before the panel changes size.
func (t *Tracker) BeginSplitResize(container Rect, horizontal bool, freeze func(), apply func(ratio float64)) (*Session, error) {
	cursor := CursorRowResize
	if horizontal {
		cursor = CursorColResize
	}
	return t.Begin(KindSplit, cursor, freeze, func(x, y float64) {
		var r float64
		if horizontal {
			if container.Width <= 0 {
				return
			}
			r = (x - container.Left) / container.Width
		} else {
			if container.Height <= 0 {
				return
			}
			r = (y - container.Top) / container.Height
		}
		if r >= MinEditorRatio && r <= MaxEditorRatio {
			apply(r)
		}
	})
}

// ReorderSession drags a slide from one position to another.
type ReorderSession struct {
	*Session
	from int
	drop func(from, to int) bool
}

func (r *ReorderSession) From() int { return r.from }

// Drop moves the dragged slide to index to and ends the session. Ending
// without a drop leaves the deck unchanged.
func (r *ReorderSession) Drop(to int) bool {
	if !r.Active() {
		return false
	}
	defer r.End()
	return r.drop(r.from, to)
}

func (t *Tracker) BeginReorder(from int, drop func(from, to int) bool) (*ReorderSession, error) {
	s, err := t.Begin(KindReorder, CursorGrabbing, nil, nil)
	if err != nil {
		return nil, err
	}
	return &ReorderSession{Session: s, from: from, drop: drop}, nil
}
