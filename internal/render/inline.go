package render

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	rawDivRe = regexp.MustCompile(`(?i)^</?div\b`)
	strongRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	emRe     = regexp.MustCompile(`\*(.+?)\*`)
)

// tagMark stands in for a tag while the emphasis passes run. normalize
// removes it from source text.
const tagMark = "\x00"

// inline applies emphasis to the markup of one block (a heading, a list item
// or a paragraph with its <br> breaks). It runs one strong pass and then one
// italic pass, each non-nesting and leftmost-first. Spans may cross the
// block's line breaks but never leave the block, and characters inside tags
// are never touched so attribute values survive unchanged.
//
// Div tags in text are escaped: containers only come from the block parser,
// so a div here is unmatched and must not reach the page as live markup.
func inline(s string) string {
	if !strings.ContainsAny(s, "*<") {
		return s
	}
	var tags []string
	masked := tagRe.ReplaceAllStringFunc(s, func(tag string) string {
		if rawDivRe.MatchString(tag) {
			return html.EscapeString(tag)
		}
		tags = append(tags, tag)
		return tagMark
	})
	masked = strongRe.ReplaceAllString(masked, "<strong>$1</strong>")
	masked = emRe.ReplaceAllString(masked, "<em>$1</em>")
	if len(tags) == 0 {
		return masked
	}
	var b strings.Builder
	for i, part := range strings.Split(masked, tagMark) {
		if i > 0 {
			b.WriteString(tags[i-1])
		}
		b.WriteString(part)
	}
	return b.String()
}
