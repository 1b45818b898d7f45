// Package deck implements the ordered slide collection and its selection.
//
// Invalid indices and degenerate operations are no-ops. Mutators report
// whether anything changed so callers can decide whether to re-render.
package deck

import (
	"errors"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/pkg/api"
)

// ErrOutOfRange is returned by the strict variants when an index does not
// address a slide.
var ErrOutOfRange = errors.New("slide index out of range")

// Deck is an ordered, never-empty list of slides plus a selected index.
// It is not safe for concurrent use; the studio facade serializes access.
type Deck struct {
	slides   []api.Slide
	selected int
}

// New returns a deck holding the initial cover slide.
func New() *Deck {
	return &Deck{slides: []api.Slide{{
		ID:   api.NewID(),
		Kind: catalog.Cover,
		Text: catalog.InitialText,
	}}}
}

// FromSlides builds a deck from existing slides. Missing ids are assigned.
// An empty input yields New().
func FromSlides(slides []api.Slide) *Deck {
	if len(slides) == 0 {
		return New()
	}
	d := &Deck{slides: make([]api.Slide, len(slides))}
	copy(d.slides, slides)
	for i := range d.slides {
		if d.slides[i].ID == "" {
			d.slides[i].ID = api.NewID()
		}
		if d.slides[i].Kind == "" {
			d.slides[i].Kind = api.KindCustom
		}
	}
	return d
}

func (d *Deck) Len() int { return len(d.slides) }

// Selected returns the selected index.
func (d *Deck) Selected() int { return d.selected }

// SelectedSlide returns a copy of the selected slide.
func (d *Deck) SelectedSlide() api.Slide { return d.slides[d.selected] }

// Slides returns a copy of the slides in display order.
func (d *Deck) Slides() []api.Slide {
	out := make([]api.Slide, len(d.slides))
	copy(out, d.slides)
	return out
}

// At returns the slide at index.
func (d *Deck) At(index int) (api.Slide, bool) {
	if !d.valid(index) {
		return api.Slide{}, false
	}
	return d.slides[index], true
}

// IDs returns the slide ids in display order.
func (d *Deck) IDs() []string {
	out := make([]string, len(d.slides))
	for i, s := range d.slides {
		out[i] = s.ID
	}
	return out
}

// Add appends a slide seeded from the catalog and selects it. Unknown kinds
// produce an empty custom slide. It returns the new slide.
func (d *Deck) Add(kind string) api.Slide {
	text, resolved := catalog.DefaultText(kind)
	s := api.Slide{ID: api.NewID(), Kind: resolved, Text: text}
	d.slides = append(d.slides, s)
	d.selected = len(d.slides) - 1
	return s
}

// UpdateContent replaces the text at index.
func (d *Deck) UpdateContent(index int, text string) bool {
	if !d.valid(index) {
		return false
	}
	if d.slides[index].Text == text {
		return false
	}
	d.slides[index].Text = text
	return true
}

// UpdateContentStrict is UpdateContent that reports bad indices.
func (d *Deck) UpdateContentStrict(index int, text string) error {
	if !d.valid(index) {
		return ErrOutOfRange
	}
	d.UpdateContent(index, text)
	return nil
}

// Delete removes the slide at index unless it is the only one.
func (d *Deck) Delete(index int) bool {
	if len(d.slides) == 1 || !d.valid(index) {
		return false
	}
	d.slides = append(d.slides[:index], d.slides[index+1:]...)
	if index <= d.selected {
		d.selected = max(0, d.selected-1)
	}
	if d.selected >= len(d.slides) {
		d.selected = len(d.slides) - 1
	}
	return true
}

// Reorder removes the slide at from and reinserts it at to in the remaining
// sequence. The moved slide becomes selected. from == to only selects.
func (d *Deck) Reorder(from, to int) bool {
	if !d.valid(from) || !d.valid(to) {
		return false
	}
	if from == to {
		changed := d.selected != to
		d.selected = to
		return changed
	}
	moved := d.slides[from]
	rest := append(d.slides[:from:from], d.slides[from+1:]...)
	out := make([]api.Slide, 0, len(d.slides))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	d.slides = out
	d.selected = to
	return true
}

// Select sets the selection when index is in range.
func (d *Deck) Select(index int) bool {
	if !d.valid(index) || index == d.selected {
		return false
	}
	d.selected = index
	return true
}

func (d *Deck) valid(index int) bool { return index >= 0 && index < len(d.slides) }
