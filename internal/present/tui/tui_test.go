package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease}
}

func newTestModel(t *testing.T, opts Options) (model, *studio.Studio) {
	t.Helper()
	st := studio.New(studio.Options{})
	t.Cleanup(st.Close)
	if opts.Feed != nil {
		detach, err := st.Attach(opts.Feed)
		require.NoError(t, err)
		t.Cleanup(detach)
	}
	m := newModel(context.Background(), st, opts)
	return send(t, m, tea.WindowSizeMsg{Width: 160, Height: 40}), st
}

func TestComputeGeometryHorizontal(t *testing.T) {
	g := ComputeGeometry(160, 40, studio.Panels{SidebarWidth: 256, EditorRatio: 0.5})
	assert.True(t, g.Horizontal)
	assert.Equal(t, 32, g.SidebarCols)
	assert.Equal(t, 33, g.MainX)
	assert.Equal(t, 127, g.MainW)
	assert.Equal(t, 39, g.MainH)
	assert.Equal(t, 64, g.EditorW)
	assert.Equal(t, 97, g.SplitAt)
	assert.Equal(t, 62, g.PreviewW)
	assert.Equal(t, api.Box{Width: 496, Height: 608}, g.PreviewBox())

	assert.True(t, g.OnSidebarEdge(32, 3))
	assert.True(t, g.OnSplit(97, 3))
	assert.True(t, g.InEditor(40, 3))
	assert.False(t, g.InEditor(120, 3))
	i, ok := g.SlideRow(4, 2, 0, 3)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = g.SlideRow(4, 5, 0, 3)
	assert.False(t, ok)
}

func TestComputeGeometryStacked(t *testing.T) {
	g := ComputeGeometry(100, 41, studio.Panels{SidebarWidth: 256, EditorRatio: 0.5})
	assert.False(t, g.Horizontal)
	assert.Equal(t, 20, g.EditorH)
	assert.Equal(t, 20, g.SplitAt)
	assert.Equal(t, 21, g.PreviewY)
	assert.Equal(t, 19, g.PreviewH)
	assert.True(t, g.OnSplit(50, 20))
	assert.True(t, g.InEditor(50, 10))
	assert.False(t, g.InEditor(50, 25))
}

func TestPreviewCols(t *testing.T) {
	dims := api.ContentDimensions{SlideWidthPx: 1280}
	assert.Equal(t, 60, PreviewCols(0.375, dims, 62))
	assert.Equal(t, 62, PreviewCols(2, dims, 62))
	assert.Equal(t, 1, PreviewCols(0, dims, 62))
}

func TestWindowSizePublishesPreviewBox(t *testing.T) {
	feed := scale.NewFeed()
	m, _ := newTestModel(t, Options{Feed: feed})

	box, ok := feed.Last()
	require.True(t, ok)
	assert.Equal(t, api.Box{Width: 496, Height: 608}, box)
	assert.InDelta(t, 0.375, m.view.Scale.Fit, 1e-9)

	out := m.View()
	assert.Contains(t, out, "Slides (1)")
	assert.Contains(t, out, "Preview · Fit · 38%")
}

func TestKeysEditTheDeck(t *testing.T) {
	m, st := newTestModel(t, Options{})

	m = send(t, m, key("a"), key("2"))
	v := st.Snapshot()
	require.Len(t, v.Slides, 2)
	assert.Equal(t, catalog.TitleParagraph, v.Slides[1].Kind)
	assert.Equal(t, 1, v.Selected)
	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, "added Title + Paragraph", m.status)

	m = send(t, m, key("K"))
	assert.Equal(t, catalog.TitleParagraph, st.Snapshot().Slides[0].Kind)

	m = send(t, m, key("j"), key("d"))
	require.Len(t, st.Snapshot().Slides, 1)
	m = send(t, m, key("d"))
	assert.Equal(t, "a deck keeps at least one slide", m.status)

	m = send(t, m, key("+"))
	assert.NotEqual(t, "Fit", st.Snapshot().Scale.ZoomLabel)
	send(t, m, key("0"))
	assert.Equal(t, "Fit", st.Snapshot().Scale.ZoomLabel)
}

func TestEditorTypingUpdatesSlide(t *testing.T) {
	m, st := newTestModel(t, Options{})

	m = send(t, m, key("enter"))
	require.Equal(t, focusEditor, m.focus)
	m = send(t, m, key("!"))
	assert.Equal(t, catalog.InitialText+"!", st.Snapshot().Slides[0].Text)

	// keys go to the editor, not the list, until esc
	m = send(t, m, key("q"), key("esc"))
	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, catalog.InitialText+"!q", st.Snapshot().Slides[0].Text)
}

func TestMouseDragReordersSlides(t *testing.T) {
	m, st := newTestModel(t, Options{})
	m = send(t, m, key("a"), key("1"), key("a"), key("3"))
	first := st.Snapshot().Slides[0].ID

	m = send(t, m, press(3, 1))
	k, ok := st.ActiveGesture()
	require.True(t, ok)
	assert.EqualValues(t, "reorder", k)
	assert.Equal(t, 0, m.view.Selected)

	m = send(t, m, motion(3, 2), release(3, 3))
	_, ok = st.ActiveGesture()
	assert.False(t, ok)
	v := st.Snapshot()
	assert.Equal(t, first, v.Slides[2].ID)
	assert.Equal(t, "moved slide", m.status)
}

func TestMouseDragResizesSidebar(t *testing.T) {
	feed := scale.NewFeed()
	m, st := newTestModel(t, Options{Feed: feed})

	m = send(t, m, press(32, 5), motion(40, 5), release(40, 5))
	assert.Equal(t, 320.0, st.Snapshot().Panels.SidebarWidth)
	assert.Equal(t, 40, m.geo.SidebarCols)

	// past the maximum width the edge stays put
	m = send(t, m, press(40, 5), motion(90, 5), release(90, 5))
	assert.Equal(t, 320.0, st.Snapshot().Panels.SidebarWidth)

	box, _ := feed.Last()
	assert.Equal(t, m.geo.PreviewBox(), box)
}

func TestMouseDragMovesSplit(t *testing.T) {
	m, st := newTestModel(t, Options{})
	send(t, m, press(97, 5), motion(71, 5), release(71, 5))
	v := st.Snapshot()
	assert.InDelta(t, (71.0-33)/127, v.Panels.EditorRatio, 1e-9)
	assert.NotEqual(t, "Fit", v.Scale.ZoomLabel)
}

func TestSettingsOverlay(t *testing.T) {
	m, st := newTestModel(t, Options{})
	font := st.Snapshot().Style.FontSizePx()

	m = send(t, m, key("s"))
	require.Equal(t, overlaySettings, m.overlay)
	assert.Contains(t, m.View(), "Slide settings")

	m = send(t, m, key("r"), key("F"), key("g"))
	v := st.Snapshot()
	assert.Equal(t, "4:3", v.Style.AspectRatio().Key)
	assert.Equal(t, 960, v.Dims.SlideHeightPx)
	assert.Equal(t, font+1, v.Style.FontSizePx())
	assert.Equal(t, "gfm", v.Engine)

	m = send(t, m, key("esc"))
	assert.Equal(t, overlayNone, m.overlay)
}

func TestWriteExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.md")
	m, _ := newTestModel(t, Options{OutPath: out})
	m = send(t, m, key("w"))
	assert.Equal(t, "wrote "+out, m.status)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "# My Presentation"))

	m, _ = newTestModel(t, Options{})
	m = send(t, m, key("w"))
	assert.Contains(t, m.status, "--out")
}

func TestPreviewCacheReusesRendering(t *testing.T) {
	c := &previewCache{}
	a := c.render("notty", "# Hello", 40)
	assert.Contains(t, a, "Hello")
	k := c.key
	assert.Equal(t, a, c.render("notty", "# Hello", 40))
	assert.Equal(t, k, c.key)
	c.render("notty", "# Other", 40)
	assert.NotEqual(t, k, c.key)
}
