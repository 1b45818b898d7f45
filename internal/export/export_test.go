package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/marpdeck/pkg/api"
)

func slides(texts ...string) []api.Slide {
	out := make([]api.Slide, len(texts))
	for i, t := range texts {
		out[i] = api.Slide{ID: api.NewID(), Kind: api.KindCustom, Text: t}
	}
	return out
}

func TestDocumentExactFormat(t *testing.T) {
	style := api.DefaultStyle()
	style.SetFontSize(28)
	style.SetLineSpacing(1.2)

	got := Document(slides("# One", "# Two"), style)
	want := "---\n" +
		"marp: true\n" +
		"theme: default\n" +
		"paginate: true\n" +
		"breaks: true\n" +
		"---\n" +
		"<style>\n" +
		"section { font-size: 28px; line-height: 1.2; }\n" +
		".columns { display: flex; gap: 2rem; }\n" +
		".columns > .col { flex: 1; }\n" +
		"</style>\n" +
		"\n" +
		"# One\n\n---\n\n# Two"
	assert.Equal(t, want, got)
}

func TestDocumentSeparatorCount(t *testing.T) {
	doc := Document(slides("a", "b", "c"), api.DefaultStyle())
	assert.Equal(t, 2, strings.Count(doc, Separator))
	assert.Equal(t, 1, strings.Count(doc, "marp: true"))
	assert.True(t, strings.HasPrefix(doc, "---\nmarp: true"))
	assert.False(t, strings.HasSuffix(doc, Separator))
}

func TestStyleBlockIntegerSpacing(t *testing.T) {
	s := api.DefaultStyle()
	s.SetLineSpacing(2)
	assert.Contains(t, StyleBlock(s), "line-height: 2; }")
}

func TestImportRoundTrip(t *testing.T) {
	style := api.DefaultStyle()
	style.SetFontSize(20)
	style.SetLineSpacing(1.8)
	in := slides("# Title\n\n**Author**", "<div class=\"columns\">\n\n- a\n\n</div>", "")

	got, err := Import(Document(in, style))
	require.NoError(t, err)
	assert.True(t, got.FrontMatter.Marp)
	assert.True(t, got.FrontMatter.Breaks)
	assert.True(t, got.FrontMatter.Paginate)
	assert.Equal(t, "default", got.FrontMatter.Theme)
	assert.Equal(t, 20, got.Style.FontSizePx())
	assert.Equal(t, 1.8, got.Style.LineSpacing())
	require.Len(t, got.Slides, 3)
	for i := range in {
		assert.Equal(t, in[i].Text, got.Slides[i].Text)
		assert.Equal(t, api.KindCustom, got.Slides[i].Kind)
		assert.NotEmpty(t, got.Slides[i].ID)
	}
}

func TestImportPlainMarkdown(t *testing.T) {
	got, err := Import("# Only\r\n\r\n---\r\n\r\n# Two")
	require.NoError(t, err)
	assert.False(t, got.FrontMatter.Marp)
	assert.Equal(t, api.DefaultStyle(), got.Style)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, "# Two", got.Slides[1].Text)
}

func TestImportClampsStyle(t *testing.T) {
	doc := "---\nmarp: true\n---\n<style>\nsection { font-size: 90px; line-height: 7; }\n</style>\n\nbody"
	got, err := Import(doc)
	require.NoError(t, err)
	assert.Equal(t, api.MaxFontSizePx, got.Style.FontSizePx())
	assert.Equal(t, api.MaxLineSpacing, got.Style.LineSpacing())
	assert.Equal(t, "body", got.Slides[0].Text)
}

func TestImportErrors(t *testing.T) {
	_, err := Import("   \n")
	assert.ErrorIs(t, err, ErrNoSlides)

	_, err = Import("---\nmarp: true\nno end")
	assert.Error(t, err)

	_, err = Import("---\nmarp: [oops\n---\nbody")
	assert.Error(t, err)
}

func TestImportEmptyFrontMatter(t *testing.T) {
	got, err := Import("---\n---\n# A")
	require.NoError(t, err)
	assert.Equal(t, "# A", got.Slides[0].Text)
}

func TestImportSkipsBlankLinesAfterFrontMatter(t *testing.T) {
	got, err := Import("---\nmarp: true\ntheme: gaia\n---\n\n# One\n\n---\n\n# Two")
	require.NoError(t, err)
	assert.Equal(t, "gaia", got.FrontMatter.Theme)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, "# One", got.Slides[0].Text)
}
