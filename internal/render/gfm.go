package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// GFM renders with goldmark: GitHub-flavoured extensions, soft breaks as
// hard breaks (the export's breaks: true), and raw HTML passed through so
// column containers survive until sanitization.
type GFM struct {
	md goldmark.Markdown
}

func NewGFM() *GFM {
	return &GFM{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)}
}

func (g *GFM) Name() string { return EngineGFM }

// Render never fails: a conversion error yields an empty fragment.
func (g *GFM) Render(text string) string {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(normalize(text)), &buf); err != nil {
		return ""
	}
	return SanitizeGFM(buf.String())
}
