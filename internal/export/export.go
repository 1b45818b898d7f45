// Package export serializes a deck to a Marp markdown document and reads
// such documents back.
package export

import (
	"strconv"
	"strings"

	"github.com/mithrel/marpdeck/pkg/api"
)

const (
	// Separator joins slide bodies.
	Separator = "\n\n---\n\n"
	// Filename is the default download name.
	Filename = "presentation.md"
	// MediaType is sent with downloads.
	MediaType = "text/markdown;charset=utf-8"
)

const frontMatter = "---\nmarp: true\ntheme: default\npaginate: true\nbreaks: true\n---\n"

// Document renders slides and style into the export format. The output has
// one front-matter block, the style block, and the slide bodies joined by
// Separator with no trailing separator.
func Document(slides []api.Slide, style api.StyleSettings) string {
	var b strings.Builder
	b.WriteString(frontMatter)
	b.WriteString(StyleBlock(style))
	b.WriteString("\n\n")
	for i, s := range slides {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// StyleBlock returns the <style> element interpolating style.
func StyleBlock(style api.StyleSettings) string {
	return "<style>\n" +
		"section { font-size: " + strconv.Itoa(style.FontSizePx()) + "px; line-height: " +
		strconv.FormatFloat(style.LineSpacing(), 'f', -1, 64) + "; }\n" +
		".columns { display: flex; gap: 2rem; }\n" +
		".columns > .col { flex: 1; }\n" +
		"</style>"
}
