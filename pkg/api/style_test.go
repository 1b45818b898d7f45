package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleSettersClamp(t *testing.T) {
	s := DefaultStyle()

	s.SetFontSize(4)
	assert.Equal(t, MinFontSizePx, s.FontSizePx())
	s.SetFontSize(90)
	assert.Equal(t, MaxFontSizePx, s.FontSizePx())
	s.SetFontSize(24)
	assert.Equal(t, 24, s.FontSizePx())

	s.SetLineSpacing(0.2)
	assert.Equal(t, MinLineSpacing, s.LineSpacing())
	s.SetLineSpacing(7)
	assert.Equal(t, MaxLineSpacing, s.LineSpacing())
	s.SetLineSpacing(1.2000000000000002)
	assert.Equal(t, 1.2, s.LineSpacing())
}

func TestSetAspectRatio(t *testing.T) {
	s := DefaultStyle()
	assert.True(t, s.SetAspectRatio("4:3"))
	assert.Equal(t, 3, s.AspectRatio().Height)
	assert.False(t, s.SetAspectRatio("21:9"))
	assert.Equal(t, "4:3", s.AspectRatio().Key)
}

func TestZeroStyleReadsAsDefault(t *testing.T) {
	var s StyleSettings
	assert.Equal(t, DefaultStyle().AspectRatio(), s.AspectRatio())
	assert.Equal(t, DefaultFontSize, s.FontSizePx())
	assert.Equal(t, DefaultSpacing, s.LineSpacing())
}

func TestStyleJSONClampsOnDecode(t *testing.T) {
	var s StyleSettings
	require.NoError(t, json.Unmarshal([]byte(`{"aspect_ratio":"16:10","font_size_px":100,"line_spacing":1.8}`), &s))
	assert.Equal(t, "16:10", s.AspectRatio().Key)
	assert.Equal(t, MaxFontSizePx, s.FontSizePx())
	assert.Equal(t, 1.8, s.LineSpacing())

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"aspect_ratio":"16:10","font_size_px":48,"line_spacing":1.8}`, string(out))
}

func TestZoomState(t *testing.T) {
	assert.True(t, Fit().IsFit())
	assert.Equal(t, "Fit", Fit().String())

	z := Manual(5)
	assert.False(t, z.IsFit())
	assert.Equal(t, MaxZoom, z.Scale())
	assert.Equal(t, "300%", z.String())
	assert.Equal(t, MinZoom, Manual(0).Scale())

	f := Frozen(0.04)
	assert.False(t, f.IsFit())
	assert.Equal(t, 0.04, f.Scale())
	assert.Equal(t, "4%", f.String())
}
