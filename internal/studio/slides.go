package studio

import (
	"github.com/mithrel/marpdeck/internal/deck"
	"github.com/mithrel/marpdeck/pkg/api"
)

// AddSlide appends a slide from the template catalog and selects it.
func (s *Studio) AddSlide(kind string) api.Slide {
	var added api.Slide
	s.commit(func() bool {
		added = s.deck.Add(kind)
		return true
	})
	s.log.Info("slide added", "kind", added.Kind, "id", added.ID)
	return added
}

// UpdateContent replaces a slide's text. It returns deck.ErrOutOfRange for
// a bad index; an unchanged text is not a new revision.
func (s *Studio) UpdateContent(index int, text string) error {
	var err error
	s.commit(func() bool {
		if _, ok := s.deck.At(index); !ok {
			err = deck.ErrOutOfRange
			return false
		}
		return s.deck.UpdateContent(index, text)
	})
	return err
}

// UpdateSelected replaces the selected slide's text, as typing in the
// editor does.
func (s *Studio) UpdateSelected(text string) bool {
	return s.commit(func() bool {
		return s.deck.UpdateContent(s.deck.Selected(), text)
	})
}

// DeleteSlide removes a slide; deleting the last one is a no-op.
func (s *Studio) DeleteSlide(index int) bool {
	ok := s.commit(func() bool {
		if !s.deck.Delete(index) {
			return false
		}
		s.cache.Prune(s.deck.IDs())
		return true
	})
	if ok {
		s.log.Info("slide deleted", "index", index)
	}
	return ok
}

// MoveSlide reorders a slide and selects it at its new position.
func (s *Studio) MoveSlide(from, to int) bool {
	ok := s.commit(func() bool { return s.deck.Reorder(from, to) })
	if ok {
		s.log.Info("slide moved", "from", from, "to", to)
	}
	return ok
}

func (s *Studio) SelectSlide(index int) bool {
	return s.commit(func() bool { return s.deck.Select(index) })
}
