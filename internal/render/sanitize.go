package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// classValueRe restricts class attributes to plain class lists.
var classValueRe = regexp.MustCompile(`^[\w\- ]*$`)

var (
	canonicalPolicy = newPolicy("div", "p", "br", "h1", "h2", "h3", "ul", "li", "strong", "em")
	gfmPolicy       = newPolicy(
		"div", "p", "br", "hr", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "strong", "em", "del", "code", "pre", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td",
	)
)

// newPolicy allows exactly the given elements and only a class attribute on
// them. Disallowed tags are stripped; script, style and iframe bodies are
// dropped entirely.
func newPolicy(elements ...string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(elements...)
	p.AllowAttrs("class").Matching(classValueRe).OnElements(elements...)
	return p
}

// Sanitize filters markup produced by the canonical grammar.
func Sanitize(markup string) string {
	return canonicalPolicy.Sanitize(markup)
}

// SanitizeGFM filters markup produced by the GFM engine. It admits the extra
// block elements goldmark emits but still no attribute besides class.
func SanitizeGFM(markup string) string {
	return gfmPolicy.Sanitize(markup)
}
