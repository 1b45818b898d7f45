package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is the glamour theme for pretty output; tests use "notty".
var DefaultStyle = "dracula"

// NewTermRenderer builds the glamour renderer shared by pretty output and
// the studio preview.
func NewTermRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r, nil
}

// WritePrettySlide renders slide markdown for the terminal, preceded by a
// small header line.
func WritePrettySlide(w io.Writer, header, text string, width int) error {
	r, err := NewTermRenderer(DefaultStyle, width)
	if err != nil {
		return err
	}
	md := strings.TrimSpace(text)
	if header != "" {
		md = fmt.Sprintf("> %s\n\n---\n\n%s\n", header, md)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
