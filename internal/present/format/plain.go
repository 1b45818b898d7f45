package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/pkg/api"
)

// TSV columns: index, selected marker, kind, title, characters
var slideHeader = "#\tsel\tkind\ttitle\tchars\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// Title returns the first non-blank line of a slide with heading markers
// stripped, or the template's display name for an empty slide.
func Title(s api.Slide) string {
	for _, line := range strings.Split(s.Text, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "<") {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(t, "#"))
	}
	return catalog.DisplayName(s.Kind)
}

func WritePlainSlides(w io.Writer, slides []api.Slide, selected int, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, slideHeader)
	}
	for i, s := range slides {
		mark := ""
		if i == selected {
			mark = "*"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", i, mark, esc(s.Kind), esc(Title(s)), len([]rune(s.Text)))
	}
	return tw.Flush()
}

func WritePlainTemplates(w io.Writer, ts []catalog.Template, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, "kind\tname\n")
	}
	for _, t := range ts {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", t.Kind, t.DisplayName)
	}
	return tw.Flush()
}

func WritePlainDims(w io.Writer, style api.StyleSettings, d api.ContentDimensions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	r := style.AspectRatio()
	_, _ = fmt.Fprintf(tw, "aspect_ratio\t%s (%s)\n", r.Key, r.Name)
	_, _ = fmt.Fprintf(tw, "font_size\t%dpx\n", style.FontSizePx())
	_, _ = fmt.Fprintf(tw, "line_spacing\t%g\n", style.LineSpacing())
	_, _ = fmt.Fprintf(tw, "slide\t%dx%d\n", d.SlideWidthPx, d.SlideHeightPx)
	_, _ = fmt.Fprintf(tw, "content\t%dx%d\n", d.ContentWidthPx, d.ContentHeightPx)
	_, _ = fmt.Fprintf(tw, "chars_per_line\t~%d\n", d.EstCharsPerLine)
	_, _ = fmt.Fprintf(tw, "lines_per_slide\t~%d\n", d.EstLinesPerSlide)
	return tw.Flush()
}
