package api

// Slide is a single markdown slide. ID is assigned once and never reused.
type Slide struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// KindCustom tags slides that did not come from a catalog template.
const KindCustom = "custom"

// AspectRatio is one of the supported slide shapes.
type AspectRatio struct {
	Key    string `json:"key"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Name   string `json:"name"`
}

var aspectRatios = []AspectRatio{
	{Key: "16:9", Width: 16, Height: 9, Name: "16:9 (Widescreen)"},
	{Key: "4:3", Width: 4, Height: 3, Name: "4:3 (Standard)"},
	{Key: "16:10", Width: 16, Height: 10, Name: "16:10 (WUXGA)"},
}

// AspectRatios returns the supported ratios in display order.
func AspectRatios() []AspectRatio {
	return append([]AspectRatio(nil), aspectRatios...)
}

// LookupAspectRatio finds a ratio by key ("16:9", "4:3", "16:10").
func LookupAspectRatio(key string) (AspectRatio, bool) {
	for _, r := range aspectRatios {
		if r.Key == key {
			return r, true
		}
	}
	return AspectRatio{}, false
}

// ContentDimensions is derived from StyleSettings and never mutated on its own.
type ContentDimensions struct {
	SlideWidthPx     int `json:"slide_width_px"`
	SlideHeightPx    int `json:"slide_height_px"`
	ContentWidthPx   int `json:"content_width_px"`
	ContentHeightPx  int `json:"content_height_px"`
	EstCharsPerLine  int `json:"est_chars_per_line"`
	EstLinesPerSlide int `json:"est_lines_per_slide"`
}

// Box is the size of a viewing container in pixels.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
