package studio

import (
	"github.com/mithrel/marpdeck/internal/deck"
	"github.com/mithrel/marpdeck/internal/gesture"
)

// Gesture callbacks run outside the studio lock; each one commits on its
// own.

// BeginSplitResize starts dragging the editor/preview divider inside
// container. A Fit zoom is frozen at the current fit scale first.
func (s *Studio) BeginSplitResize(container gesture.Rect, viewportWidth float64) error {
	_, err := s.tracker.BeginSplitResize(container, gesture.Horizontal(viewportWidth),
		func() {
			s.commit(func() bool { return s.scale.FreezeForResize() })
		},
		func(ratio float64) {
			s.commit(func() bool {
				s.panels.EditorRatio = ratio
				return true
			})
		})
	if err != nil {
		return err
	}
	s.log.Debug("gesture begin", "kind", gesture.KindSplit)
	s.touch()
	return nil
}

// BeginSidebarResize starts dragging the sidebar edge from pointer x.
func (s *Studio) BeginSidebarResize(startX float64) error {
	s.mu.Lock()
	start := s.panels.SidebarWidth
	s.mu.Unlock()
	_, err := s.tracker.BeginSidebarResize(startX, start, func(w float64) {
		s.commit(func() bool {
			s.panels.SidebarWidth = w
			return true
		})
	})
	if err != nil {
		return err
	}
	s.log.Debug("gesture begin", "kind", gesture.KindSidebar)
	s.touch()
	return nil
}

// BeginSlideDrag picks up the slide at from for reordering.
func (s *Studio) BeginSlideDrag(from int) error {
	s.mu.Lock()
	_, ok := s.deck.At(from)
	s.mu.Unlock()
	if !ok {
		return deck.ErrOutOfRange
	}
	r, err := s.tracker.BeginReorder(from, s.MoveSlide)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.reorder = r
	s.mu.Unlock()
	s.log.Debug("gesture begin", "kind", gesture.KindReorder, "from", from)
	s.touch()
	return nil
}

// DropSlide completes a slide drag at index to. Without a drag in
// progress it does nothing.
func (s *Studio) DropSlide(to int) bool {
	s.mu.Lock()
	r := s.reorder
	s.reorder = nil
	s.mu.Unlock()
	if r == nil {
		return false
	}
	moved := r.Drop(to)
	s.touch()
	return moved
}

// PointerMove forwards a pointer position to the active gesture.
func (s *Studio) PointerMove(x, y float64) bool {
	return s.tracker.Move(x, y)
}

// PointerRelease ends the active gesture wherever the pointer is.
func (s *Studio) PointerRelease() bool {
	s.mu.Lock()
	s.reorder = nil
	s.mu.Unlock()
	if !s.tracker.Release() {
		return false
	}
	s.log.Debug("gesture end")
	s.touch()
	return true
}

// ActiveGesture returns the kind of the running gesture, if any.
func (s *Studio) ActiveGesture() (gesture.Kind, bool) {
	a, ok := s.tracker.Active()
	if !ok {
		return "", false
	}
	return a.Kind(), true
}

// touch publishes a revision for gesture lifecycle changes.
func (s *Studio) touch() {
	s.commit(func() bool { return true })
}
