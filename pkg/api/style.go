package api

import "math"

const (
	MinFontSizePx   = 10
	MaxFontSizePx   = 48
	MinLineSpacing  = 1.0
	MaxLineSpacing  = 2.5
	DefaultFontSize = 32
	DefaultSpacing  = 1.5
	DefaultRatioKey = "16:9"
)

// StyleSettings apply to the whole deck. Fields are only changed through the
// setters, which clamp, so readers never see out-of-range values.
type StyleSettings struct {
	ratio       AspectRatio
	fontSizePx  int
	lineSpacing float64
}

// DefaultStyle returns 16:9, 32px, 1.5.
func DefaultStyle() StyleSettings {
	r, _ := LookupAspectRatio(DefaultRatioKey)
	return StyleSettings{ratio: r, fontSizePx: DefaultFontSize, lineSpacing: DefaultSpacing}
}

// AspectRatio returns the configured ratio; the zero value reads as 16:9.
func (s StyleSettings) AspectRatio() AspectRatio {
	if s.ratio.Width == 0 || s.ratio.Height == 0 {
		r, _ := LookupAspectRatio(DefaultRatioKey)
		return r
	}
	return s.ratio
}

func (s StyleSettings) FontSizePx() int {
	if s.fontSizePx == 0 {
		return DefaultFontSize
	}
	return s.fontSizePx
}

func (s StyleSettings) LineSpacing() float64 {
	if s.lineSpacing == 0 {
		return DefaultSpacing
	}
	return s.lineSpacing
}

// SetAspectRatio switches the ratio; unknown keys leave the style unchanged.
func (s *StyleSettings) SetAspectRatio(key string) bool {
	r, ok := LookupAspectRatio(key)
	if !ok {
		return false
	}
	s.ratio = r
	return true
}

// SetFontSize clamps px to [10, 48].
func (s *StyleSettings) SetFontSize(px int) {
	if px < MinFontSizePx {
		px = MinFontSizePx
	}
	if px > MaxFontSizePx {
		px = MaxFontSizePx
	}
	s.fontSizePx = px
}

// SetLineSpacing clamps v to [1.0, 2.5] and snaps it to one decimal.
func (s *StyleSettings) SetLineSpacing(v float64) {
	if math.IsNaN(v) {
		v = DefaultSpacing
	}
	v = math.Round(v*10) / 10
	if v < MinLineSpacing {
		v = MinLineSpacing
	}
	if v > MaxLineSpacing {
		v = MaxLineSpacing
	}
	s.lineSpacing = v
}

// styleJSON is the wire form of StyleSettings.
type styleJSON struct {
	AspectRatio string  `json:"aspect_ratio"`
	FontSizePx  int     `json:"font_size_px"`
	LineSpacing float64 `json:"line_spacing"`
}
