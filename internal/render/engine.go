// Package render turns slide markdown into sanitized HTML.
//
// The canonical grammar is a deliberately small block-then-inline subset:
// headings h1-h3, "- " lists, paragraphs with hard line breaks, and
// <div class> containers whose interior is parsed recursively. The GFM
// engine is an alternative backed by goldmark; the two are never mixed.
package render

import (
	"fmt"
	"strings"
)

const (
	EngineCanonical = "canonical"
	EngineGFM       = "gfm"
)

// Engine converts markdown to a sanitized HTML fragment. Implementations are
// deterministic and safe for concurrent use.
type Engine interface {
	Name() string
	Render(text string) string
}

// Canonical implements the built-in grammar.
type Canonical struct{}

func (Canonical) Name() string { return EngineCanonical }

func (Canonical) Render(text string) string { return Render(text) }

// Render converts text with the canonical grammar and sanitizes the result.
// Empty input yields an empty fragment.
func Render(text string) string {
	src := normalize(text)
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var b strings.Builder
	writeNodes(&b, parseBlocks(src))
	return Sanitize(b.String())
}

// Engines lists the supported engine names.
func Engines() []string { return []string{EngineCanonical, EngineGFM} }

// NewEngine returns the engine registered under name; "" selects canonical.
func NewEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineCanonical:
		return Canonical{}, nil
	case EngineGFM:
		return NewGFM(), nil
	default:
		return nil, fmt.Errorf("unknown render engine %q", name)
	}
}

// normalize repairs invalid UTF-8, drops NUL bytes and folds CRLF.
func normalize(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, tagMark, "")
	return strings.ReplaceAll(s, "\r\n", "\n")
}
