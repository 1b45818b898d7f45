package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingEngine struct{ calls int }

func (c *countingEngine) Name() string { return "counting" }

func (c *countingEngine) Render(text string) string {
	c.calls++
	return Render(text)
}

func TestCacheReusesUnchangedSlide(t *testing.T) {
	c := NewCache()
	e := &countingEngine{}

	first := c.Get(e, "s1", "# A")
	second := c.Get(e, "s1", "# A")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.calls)

	assert.Equal(t, "<h1>B</h1>", c.Get(e, "s1", "# B"))
	assert.Equal(t, 2, e.calls)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestCacheKeyIncludesEngine(t *testing.T) {
	c := NewCache()
	canonical := c.Get(Canonical{}, "s1", "***x***")
	gfm := c.Get(NewGFM(), "s1", "***x***")
	assert.NotEqual(t, canonical, gfm)
}

func TestCachePruneAndInvalidate(t *testing.T) {
	c := NewCache()
	e := Canonical{}
	c.Get(e, "a", "x")
	c.Get(e, "b", "y")
	c.Get(e, "c", "z")

	assert.Equal(t, 2, c.Prune([]string{"b"}))
	assert.Equal(t, 1, c.Len())

	c.Invalidate("b")
	assert.Equal(t, 0, c.Len())
}
