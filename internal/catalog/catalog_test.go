package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/marpdeck/pkg/api"
)

func TestKindsStableOrder(t *testing.T) {
	assert.Equal(t, []string{Cover, TitleParagraph, TwoColumns, ThreeColumns}, Kinds())
}

func TestDisplayNameFallback(t *testing.T) {
	assert.Equal(t, "Title + 2 Columns", DisplayName(TwoColumns))
	assert.Equal(t, "Custom Slide", DisplayName("nope"))
	assert.Equal(t, "Custom Slide", DisplayName(api.KindCustom))
}

func TestDefaultText(t *testing.T) {
	text, kind := DefaultText(Cover)
	assert.Equal(t, Cover, kind)
	assert.Equal(t, "# Presentation Title\n\n## Subtitle\n\n**Author Name**\n\n*Date*", text)

	text, kind = DefaultText("bogus")
	assert.Equal(t, api.KindCustom, kind)
	assert.Empty(t, text)
}

func TestTemplatesReturnsCopy(t *testing.T) {
	ts := Templates()
	ts[0].DisplayName = "changed"
	assert.Equal(t, "Cover Slide", DisplayName(Cover))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"cover", Cover, true},
		{"TwoColumns", TwoColumns, true},
		{"Title + 3 Columns", ThreeColumns, true},
		{"custom", api.KindCustom, true},
		{"three", ThreeColumns, true},
		{"para", TitleParagraph, true},
		{"", "", false},
		{"zzzz", "", false},
	}
	for _, tc := range tests {
		got, ok := Resolve(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestComplete(t *testing.T) {
	assert.Equal(t, Kinds(), Complete("", 0))
	got := Complete("Col", 5)
	assert.ElementsMatch(t, []string{TwoColumns, ThreeColumns}, got)
}
