// Package catalog holds the read-only slide templates.
package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mithrel/marpdeck/pkg/api"
)

// Template is a named starting text for a new slide.
type Template struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	DefaultText string `json:"default_text"`
}

const (
	Cover          = "cover"
	TitleParagraph = "titleParagraph"
	TwoColumns     = "twoColumns"
	ThreeColumns   = "threeColumns"
)

// CustomName labels slides whose kind is not in the catalog.
const CustomName = "Custom Slide"

// InitialText seeds the first slide of a fresh deck.
const InitialText = "# My Presentation\n\n## Subtitle\n\n**Author Name**\n\n*Date*"

var templates = []Template{
	{
		Kind:        Cover,
		DisplayName: "Cover Slide",
		DefaultText: "# Presentation Title\n\n## Subtitle\n\n**Author Name**\n\n*Date*",
	},
	{
		Kind:        TitleParagraph,
		DisplayName: "Title + Paragraph",
		DefaultText: "# Slide Title\n\nLorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	},
	{
		Kind:        TwoColumns,
		DisplayName: "Title + 2 Columns",
		DefaultText: "# Slide Title\n\n<div class=\"columns\">\n\n<div class=\"col\">\n\n## Left Column\n\n- Point 1\n- Point 2\n- Point 3\n\n</div>\n\n<div class=\"col\">\n\n## Right Column\n\n- Point A\n- Point B\n- Point C\n\n</div>\n\n</div>",
	},
	{
		Kind:        ThreeColumns,
		DisplayName: "Title + 3 Columns",
		DefaultText: "# Slide Title\n\n<div class=\"columns\">\n\n<div class=\"col\">\n\n## Column 1\n\n- Item 1\n- Item 2\n\n</div>\n\n<div class=\"col\">\n\n## Column 2\n\n- Item A\n- Item B\n\n</div>\n\n<div class=\"col\">\n\n## Column 3\n\n- Item X\n- Item Y\n\n</div>\n\n</div>",
	},
}

// Lookup returns the template registered for kind.
func Lookup(kind string) (Template, bool) {
	for _, t := range templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// Templates returns the catalog in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Kinds returns the template kinds in display order.
func Kinds() []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.Kind)
	}
	return out
}

// DisplayName returns the human label for kind, or "Custom Slide".
func DisplayName(kind string) string {
	if t, ok := Lookup(kind); ok {
		return t.DisplayName
	}
	return CustomName
}

// DefaultText returns the seed text for kind and the kind the slide should
// carry. Unknown kinds produce an empty custom slide.
func DefaultText(kind string) (text string, resolved string) {
	if t, ok := Lookup(kind); ok {
		return t.DefaultText, t.Kind
	}
	return "", api.KindCustom
}

// Resolve maps loose user input ("two", "3col", "Cover") to a kind. Exact
// kind matches win, then case-insensitive kind or display name, then the
// best fuzzy match over kinds.
func Resolve(input string) (string, bool) {
	in := strings.TrimSpace(input)
	if in == "" {
		return "", false
	}
	if _, ok := Lookup(in); ok {
		return in, true
	}
	if strings.EqualFold(in, api.KindCustom) {
		return api.KindCustom, true
	}
	for _, t := range templates {
		if strings.EqualFold(in, t.Kind) || strings.EqualFold(in, t.DisplayName) {
			return t.Kind, true
		}
	}
	matches := fuzzy.Find(strings.ToLower(in), lowerKinds())
	if len(matches) == 0 {
		return "", false
	}
	return templates[matches[0].Index].Kind, true
}

// Complete ranks template kinds against a partial input for shell completion.
func Complete(input string, n int) []string {
	kinds := Kinds()
	if input == "" {
		return kinds
	}
	matches := fuzzy.Find(input, kinds)
	if n <= 0 || len(matches) < n {
		n = len(matches)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = matches[i].Str
	}
	return out
}

func lowerKinds() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = strings.ToLower(t.Kind)
	}
	return out
}
