package render

import (
	"html"
	"regexp"
	"strings"
)

type nodeKind int

const (
	nodeParagraph nodeKind = iota
	nodeHeading
	nodeList
	nodeContainer
	nodeLiteral
)

// node is one block of the parsed tree. Containers carry their open tag
// verbatim and their children; every other kind carries text lines.
type node struct {
	kind     nodeKind
	level    int
	lines    []string
	open     string
	children []node
}

var (
	containerOpenRe = regexp.MustCompile(`(?i)^<div\b[^>]*\bclass\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)[^>]*>`)
	divTagRe        = regexp.MustCompile(`(?i)<div\b|</div\s*>`)
	headingRe       = regexp.MustCompile(`^(#{1,3}) `)
)

// parseBlocks segments src into a block tree. Blocks are separated by blank
// lines; a container open tag consumes everything up to its matching close
// tag and its interior is parsed recursively.
func parseBlocks(src string) []node {
	var out []node
	pos := 0
	for pos < len(src) {
		pos = skipBlankLines(src, pos)
		if pos >= len(src) {
			break
		}
		if open := containerOpenRe.FindString(src[pos:]); open != "" {
			bodyStart := pos + len(open)
			if closeStart, closeEnd, ok := matchClose(src, bodyStart); ok {
				out = append(out, node{
					kind:     nodeContainer,
					open:     open,
					children: parseBlocks(src[bodyStart:closeStart]),
				})
				pos = closeEnd
				continue
			}
			end := blockEnd(src, pos)
			out = append(out, node{kind: nodeLiteral, lines: splitLines(src[pos:end])})
			pos = end
			continue
		}
		end := blockEnd(src, pos)
		out = append(out, classify(splitLines(src[pos:end]))...)
		pos = end
	}
	return out
}

// matchClose finds the </div> balancing an open tag whose body starts at from.
func matchClose(src string, from int) (start, end int, ok bool) {
	depth := 1
	for _, m := range divTagRe.FindAllStringIndex(src[from:], -1) {
		if src[from+m[0]+1] == '/' {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			return from + m[0], from + m[1], true
		}
	}
	return 0, 0, false
}

// blockEnd returns the offset of the blank line (or container open line)
// ending the block that starts at pos.
func blockEnd(src string, pos int) int {
	i := lineEnd(src, pos)
	for i < len(src) {
		next := i + 1
		if next >= len(src) {
			return len(src)
		}
		le := lineEnd(src, next)
		line := src[next:le]
		if strings.TrimSpace(line) == "" || containerOpenRe.MatchString(line) {
			return next
		}
		i = le
	}
	return len(src)
}

func lineEnd(src string, pos int) int {
	if i := strings.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(src)
}

func skipBlankLines(src string, pos int) int {
	for pos < len(src) {
		end := lineEnd(src, pos)
		if strings.TrimSpace(src[pos:end]) != "" {
			return pos
		}
		pos = end + 1
	}
	return len(src)
}

func splitLines(block string) []string {
	return strings.Split(strings.TrimRight(block, "\n"), "\n")
}

// classify turns one blank-line-delimited block into nodes. Heading blocks
// keep only the first line as the heading; any remaining lines follow as a
// paragraph.
func classify(lines []string) []node {
	first := lines[0]
	switch {
	case len(first) >= 4 && strings.EqualFold(first[:4], "<div"):
		return []node{{kind: nodeLiteral, lines: lines}}
	case headingRe.MatchString(first):
		m := headingRe.FindStringSubmatch(first)
		out := []node{{kind: nodeHeading, level: len(m[1]), lines: []string{first[len(m[0]):]}}}
		if len(lines) > 1 {
			out = append(out, node{kind: nodeParagraph, lines: lines[1:]})
		}
		return out
	case strings.HasPrefix(first, "- "):
		var items []string
		for _, l := range lines {
			if strings.HasPrefix(l, "- ") {
				items = append(items, strings.TrimPrefix(l, "- "))
				continue
			}
			items[len(items)-1] += "\n" + l
		}
		return []node{{kind: nodeList, lines: items}}
	default:
		return []node{{kind: nodeParagraph, lines: lines}}
	}
}

// writeNodes emits markup for the tree, running the inline pass once per
// text block.
func writeNodes(b *strings.Builder, nodes []node) {
	for _, n := range nodes {
		switch n.kind {
		case nodeContainer:
			b.WriteString(n.open)
			writeNodes(b, n.children)
			b.WriteString("</div>")
		case nodeHeading:
			tag := headingTags[n.level]
			b.WriteString("<" + tag + ">")
			b.WriteString(inline(n.lines[0]))
			b.WriteString("</" + tag + ">")
		case nodeList:
			b.WriteString("<ul>")
			for _, item := range n.lines {
				b.WriteString("<li>")
				b.WriteString(inline(strings.ReplaceAll(item, "\n", "<br>")))
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		case nodeParagraph:
			b.WriteString("<p>")
			b.WriteString(inline(strings.Join(n.lines, "<br>")))
			b.WriteString("</p>")
		case nodeLiteral:
			b.WriteString("<p>")
			for i, l := range n.lines {
				if i > 0 {
					b.WriteString("<br>")
				}
				b.WriteString(html.EscapeString(l))
			}
			b.WriteString("</p>")
		}
	}
}

var headingTags = [...]string{1: "h1", 2: "h2", 3: "h3"}
