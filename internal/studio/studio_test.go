package studio

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/deck"
	"github.com/mithrel/marpdeck/internal/export"
	"github.com/mithrel/marpdeck/internal/gesture"
	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/pkg/api"
)

func TestNewStudioDefaults(t *testing.T) {
	s := New(Options{})
	v := s.Snapshot()
	require.Len(t, v.Slides, 1)
	assert.Equal(t, "Cover Slide", v.Slides[0].Name)
	assert.Equal(t, 0, v.Selected)
	assert.Contains(t, v.SelectedHTML, "<h1>My Presentation</h1>")
	assert.Equal(t, 720, v.Dims.SlideHeightPx)
	assert.Equal(t, 1.0, v.Scale.Effective)
	assert.Equal(t, "Fit", v.Scale.ZoomLabel)
	assert.Equal(t, render.EngineCanonical, v.Engine)
	assert.Equal(t, Panels{SidebarWidth: 256, EditorRatio: 0.5}, v.Panels)
}

func TestEditThenRenderInOrder(t *testing.T) {
	s := New(Options{})
	ch, cancel := s.Subscribe(64)
	defer cancel()

	s.AddSlide(catalog.TitleParagraph)
	require.NoError(t, s.UpdateContent(1, "# Edited"))
	s.SelectSlide(0)

	var revs []uint64
	var htmls []string
	for i := 0; i < 3; i++ {
		v := <-ch
		revs = append(revs, v.Revision)
		htmls = append(htmls, v.SelectedHTML)
	}
	assert.Equal(t, []uint64{1, 2, 3}, revs)
	assert.Contains(t, htmls[0], "<h1>Slide Title</h1>")
	assert.Equal(t, "<h1>Edited</h1>", htmls[1])
	assert.Contains(t, htmls[2], "My Presentation")
}

func TestUpdateContentOutOfRange(t *testing.T) {
	s := New(Options{})
	assert.ErrorIs(t, s.UpdateContent(3, "x"), deck.ErrOutOfRange)
	assert.Equal(t, uint64(0), s.Snapshot().Revision)

	assert.NoError(t, s.UpdateContent(0, catalog.InitialText))
	assert.Equal(t, uint64(0), s.Snapshot().Revision, "unchanged text is not a revision")
}

func TestDeleteKeepsOneSlide(t *testing.T) {
	s := New(Options{})
	assert.False(t, s.DeleteSlide(0))
	s.AddSlide(catalog.Cover)
	assert.True(t, s.DeleteSlide(0))
	assert.Len(t, s.Snapshot().Slides, 1)
}

func TestStyleChangesLayoutAndFit(t *testing.T) {
	s := New(Options{})
	s.Resize(api.Box{Width: 1296, Height: 2000})
	assert.InDelta(t, 1.0, s.Snapshot().Scale.Fit, 1e-9)

	require.NoError(t, s.SetAspectRatio("4:3"))
	v := s.Snapshot()
	assert.Equal(t, 960, v.Dims.SlideHeightPx)
	assert.InDelta(t, 1.0, v.Scale.Fit, 1e-9)

	s.Resize(api.Box{Width: 1296, Height: 496})
	assert.InDelta(t, 0.5, s.Snapshot().Scale.Fit, 1e-9)

	assert.ErrorIs(t, s.SetAspectRatio("21:9"), ErrUnknownRatio)

	assert.True(t, s.SetFontSize(100))
	assert.Equal(t, api.MaxFontSizePx, s.Snapshot().Style.FontSizePx())
	assert.False(t, s.SetFontSize(48), "already clamped to 48")

	assert.True(t, s.SetLineSpacing(2.04))
	assert.Equal(t, 2.0, s.Snapshot().Style.LineSpacing())
}

func TestSetEngine(t *testing.T) {
	s := New(Options{})
	s.UpdateSelected("***x***")
	canonical := s.Snapshot().SelectedHTML

	require.NoError(t, s.SetEngine("gfm"))
	v := s.Snapshot()
	assert.Equal(t, render.EngineGFM, v.Engine)
	assert.NotEqual(t, canonical, v.SelectedHTML)

	assert.Error(t, s.SetEngine("bogus"))
}

func TestZoom(t *testing.T) {
	s := New(Options{})
	s.Resize(api.Box{Width: 656, Height: 1000})
	z := s.ZoomIn()
	assert.Equal(t, "60%", z.String())
	s.ZoomOut()
	assert.InDelta(t, 0.5, s.Snapshot().Scale.Effective, 1e-9)
	s.ZoomFit()
	assert.True(t, s.Snapshot().Scale.Zoom.IsFit())

	s.SetZoom(api.Manual(9))
	assert.Equal(t, api.MaxZoom, s.Snapshot().Scale.Effective)
}

func TestAttachFeedPublishesRevisions(t *testing.T) {
	s := New(Options{})
	feed := scale.NewFeed()
	detach, err := s.Attach(feed)
	require.NoError(t, err)
	defer detach()

	_, err = s.Attach(feed)
	assert.ErrorIs(t, err, scale.ErrAttached)

	before := s.Snapshot().Revision
	feed.Publish(api.Box{Width: 656, Height: 1000})
	v := s.Snapshot()
	assert.Equal(t, before+1, v.Revision)
	assert.InDelta(t, 0.5, v.Scale.Effective, 1e-9)
}

func TestSplitResizeFreezesZoom(t *testing.T) {
	s := New(Options{})
	s.Resize(api.Box{Width: 1296, Height: 2000})

	require.NoError(t, s.BeginSplitResize(gesture.Rect{Width: 2000, Height: 1000}, 1400))
	v := s.Snapshot()
	assert.False(t, v.Scale.Zoom.IsFit())
	assert.Equal(t, string(gesture.KindSplit), v.Gesture)

	assert.True(t, s.PointerMove(600, 0))
	s.Resize(api.Box{Width: 700, Height: 2000})
	v = s.Snapshot()
	assert.InDelta(t, 0.3, v.Panels.EditorRatio, 1e-9)
	assert.InDelta(t, 1.0, v.Scale.Effective, 1e-9, "scale frozen during drag")
	assert.Less(t, v.Scale.Fit, 1.0)

	assert.ErrorIs(t, s.BeginSidebarResize(0), gesture.ErrBusy)
	assert.True(t, s.PointerRelease())
	assert.Empty(t, s.Snapshot().Gesture)
}

func TestSidebarResize(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.BeginSidebarResize(100))
	s.PointerMove(150, 0)
	s.PointerMove(600, 0)
	s.PointerRelease()
	assert.Equal(t, 306.0, s.Snapshot().Panels.SidebarWidth)
	assert.False(t, s.PointerMove(0, 0))
}

func TestSlideDrag(t *testing.T) {
	s := New(Options{})
	s.AddSlide(catalog.TwoColumns)
	s.AddSlide(catalog.ThreeColumns)
	ids := func() []string {
		var out []string
		for _, sv := range s.Snapshot().Slides {
			out = append(out, sv.ID)
		}
		return out
	}
	before := ids()

	require.NoError(t, s.BeginSlideDrag(2))
	assert.True(t, s.DropSlide(0))
	after := ids()
	assert.Equal(t, []string{before[2], before[0], before[1]}, after)
	assert.Equal(t, 0, s.Snapshot().Selected)

	assert.False(t, s.DropSlide(1), "no drag in progress")
	assert.ErrorIs(t, s.BeginSlideDrag(9), deck.ErrOutOfRange)

	require.NoError(t, s.BeginSlideDrag(1))
	s.PointerRelease()
	assert.Equal(t, after, ids(), "release without drop keeps order")
}

func TestExportImport(t *testing.T) {
	s := New(Options{})
	s.AddSlide(catalog.TitleParagraph)
	s.SetFontSize(24)
	doc := s.Export()
	assert.Equal(t, 1, strings.Count(doc, export.Separator))
	assert.Contains(t, doc, "font-size: 24px")

	other := New(Options{})
	require.NoError(t, other.Import(doc))
	v := other.Snapshot()
	require.Len(t, v.Slides, 2)
	assert.Equal(t, 24, v.Style.FontSizePx())
	assert.Equal(t, api.KindCustom, v.Slides[1].Kind)
	assert.Equal(t, "Custom Slide", v.Slides[1].Name)

	assert.Error(t, other.Import(""))
}

func TestRenderSlide(t *testing.T) {
	s := New(Options{})
	html, err := s.RenderSlide(0)
	require.NoError(t, err)
	assert.Contains(t, html, "<h2>Subtitle</h2>")
	_, err = s.RenderSlide(1)
	assert.ErrorIs(t, err, deck.ErrOutOfRange)
}

func TestCloseEndsSubscriptionsAndGestures(t *testing.T) {
	s := New(Options{})
	ch, cancel := s.Subscribe(1)
	require.NoError(t, s.BeginSidebarResize(0))
	<-ch

	s.Close()
	_, open := <-ch
	assert.False(t, open)
	cancel()

	_, ok := s.ActiveGesture()
	assert.False(t, ok)
	s.AddSlide(catalog.Cover)
	assert.Len(t, s.Snapshot().Slides, 1, "closed studio ignores mutations")
}

func TestConcurrentMutationsSerialize(t *testing.T) {
	s := New(Options{})
	ch, cancel := s.Subscribe(1024)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.AddSlide(catalog.Cover)
			}
		}()
	}
	wg.Wait()

	last := uint64(0)
	for i := 0; i < 160; i++ {
		v := <-ch
		require.Greater(t, v.Revision, last)
		last = v.Revision
	}
	assert.Len(t, s.Snapshot().Slides, 161)
}

func TestSetStyleValue(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.SetStyleValue(KeyAspectRatio, "4:3"))
	require.NoError(t, s.SetStyleValue(KeyFontSize, "90px"))
	require.NoError(t, s.SetStyleValue(KeyLineSpacing, "1.8"))
	require.NoError(t, s.SetStyleValue(KeyEngine, "gfm"))
	v := s.Snapshot()
	assert.Equal(t, "4:3", v.Style.AspectRatio().Key)
	assert.Equal(t, api.MaxFontSizePx, v.Style.FontSizePx())
	assert.InDelta(t, 1.8, v.Style.LineSpacing(), 1e-9)
	assert.Equal(t, render.EngineGFM, v.Engine)

	assert.ErrorIs(t, s.SetStyleValue(KeyAspectRatio, "21:9"), ErrUnknownRatio)
	assert.Error(t, s.SetStyleValue(KeyFontSize, "big"))
	assert.Error(t, s.SetStyleValue("theme", "gaia"))
}

func TestApplyZoom(t *testing.T) {
	s := New(Options{})
	tests := []struct {
		in    string
		label string
	}{
		{"in", "110%"},
		{"150%", "150%"},
		{"out", "140%"},
		{"0.5", "50%"},
		{"fit", "Fit"},
		{"900%", "300%"},
	}
	for _, tc := range tests {
		z, err := s.ApplyZoom(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.label, z.String(), tc.in)
		assert.Equal(t, tc.label, s.Snapshot().Scale.ZoomLabel, tc.in)
	}
	_, err := s.ApplyZoom("huge")
	assert.Error(t, err)
	_, err = s.ApplyZoom("-20%")
	assert.Error(t, err)
}
