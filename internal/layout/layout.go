// Package layout sizes the slide canvas from the deck's style settings.
package layout

import (
	"math"

	"github.com/mithrel/marpdeck/pkg/api"
)

const (
	// BaseWidthPx is the fixed slide width every ratio is derived from.
	BaseWidthPx = 1280
	// ContentFraction leaves a 10% padding on each side of the slide.
	ContentFraction = 0.8
	// CharWidthFactor estimates an average glyph as 0.6em wide.
	CharWidthFactor = 0.6
)

// Calculate derives slide and content dimensions. It is a pure function of s.
func Calculate(s api.StyleSettings) api.ContentDimensions {
	ratio := s.AspectRatio()
	baseHeight := float64(BaseWidthPx) * float64(ratio.Height) / float64(ratio.Width)

	d := api.ContentDimensions{
		SlideWidthPx:  BaseWidthPx,
		SlideHeightPx: int(math.Round(baseHeight)),
	}
	d.ContentWidthPx = int(math.Round(ContentFraction * float64(d.SlideWidthPx)))
	d.ContentHeightPx = int(math.Round(ContentFraction * float64(d.SlideHeightPx)))

	avgCharWidth := float64(s.FontSizePx()) * CharWidthFactor
	lineHeight := float64(s.FontSizePx()) * s.LineSpacing()
	d.EstCharsPerLine = int(math.Floor(float64(d.ContentWidthPx) / avgCharWidth))
	d.EstLinesPerSlide = int(math.Floor(float64(d.ContentHeightPx) / lineHeight))
	return d
}

// Memo caches the last computed dimensions keyed on the style they were
// computed from. It holds no other state.
type Memo struct {
	key   api.StyleSettings
	dims  api.ContentDimensions
	valid bool
}

// Get returns dimensions for s, recomputing only when s differs from the
// last input.
func (m *Memo) Get(s api.StyleSettings) api.ContentDimensions {
	if m.valid && m.key == s {
		return m.dims
	}
	m.key = s
	m.dims = Calculate(s)
	m.valid = true
	return m.dims
}
