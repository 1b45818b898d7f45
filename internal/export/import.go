package export

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mithrel/marpdeck/pkg/api"
)

// ErrNoSlides is returned when a document has no slide bodies.
var ErrNoSlides = errors.New("document contains no slides")

// FrontMatter is the subset of Marp directives the editor understands.
// Unknown directives are ignored.
type FrontMatter struct {
	Marp     bool   `yaml:"marp"`
	Theme    string `yaml:"theme"`
	Paginate bool   `yaml:"paginate"`
	Breaks   bool   `yaml:"breaks"`
}

// Imported is the result of parsing a document.
type Imported struct {
	FrontMatter FrontMatter
	Style       api.StyleSettings
	Slides      []api.Slide
}

var (
	styleBlockRe = regexp.MustCompile(`(?s)^<style>(.*?)</style>`)
	fontSizeRe   = regexp.MustCompile(`font-size:\s*([0-9]+)px`)
	lineHeightRe = regexp.MustCompile(`line-height:\s*([0-9]*\.?[0-9]+)`)
)

// Import parses a Marp document. Documents written by Document round-trip:
// the slide texts and style come back unchanged. Slides get fresh ids and
// the custom kind.
func Import(doc string) (Imported, error) {
	if strings.TrimSpace(doc) == "" {
		return Imported{}, ErrNoSlides
	}
	out := Imported{Style: api.DefaultStyle()}
	body := strings.ReplaceAll(doc, "\r\n", "\n")

	if rest, ok := strings.CutPrefix(body, "---\n"); ok {
		raw, after, found := cutFrontMatter(rest)
		if !found {
			return Imported{}, errors.New("unterminated front matter")
		}
		if err := yaml.Unmarshal([]byte(raw), &out.FrontMatter); err != nil {
			return Imported{}, fmt.Errorf("front matter: %w", err)
		}
		body = after
	}

	if m := styleBlockRe.FindStringSubmatchIndex(body); m != nil {
		css := body[m[2]:m[3]]
		if fm := fontSizeRe.FindStringSubmatch(css); fm != nil {
			if px, err := strconv.Atoi(fm[1]); err == nil {
				out.Style.SetFontSize(px)
			}
		}
		if lm := lineHeightRe.FindStringSubmatch(css); lm != nil {
			if v, err := strconv.ParseFloat(lm[1], 64); err == nil {
				out.Style.SetLineSpacing(v)
			}
		}
		body = strings.TrimPrefix(body[m[1]:], "\n\n")
	} else {
		body = strings.TrimLeft(body, "\n")
	}

	for _, text := range strings.Split(body, Separator) {
		out.Slides = append(out.Slides, api.Slide{ID: api.NewID(), Kind: api.KindCustom, Text: text})
	}
	return out, nil
}

// cutFrontMatter splits s at the closing "---" line.
func cutFrontMatter(s string) (raw, rest string, ok bool) {
	if after, found := strings.CutPrefix(s, "---\n"); found {
		return "", after, true
	}
	i := strings.Index(s, "\n---\n")
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+len("\n---\n"):], true
}
