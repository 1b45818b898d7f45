package tui

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"

	"github.com/mithrel/marpdeck/internal/present/format"
	"github.com/mithrel/marpdeck/pkg/api"
)

// previewCache keeps the last glamour rendering; the preview redraws on
// every event but the slide rarely changes between them.
type previewCache struct {
	key string
	out string
}

func (c *previewCache) render(style, text string, width int) string {
	key := fmt.Sprintf("%s:%d:%s", style, width, api.ContentHash(text))
	if key == c.key {
		return c.out
	}
	out := wordwrap.String(text, width)
	if r, err := format.NewTermRenderer(style, width); err == nil {
		if s, err := r.Render(text); err == nil {
			out = s
		}
	}
	c.key, c.out = key, out
	return out
}
