// Package studio is the single mutation path over a deck: slides, style,
// rendering, layout, preview scale and pointer gestures. Every mutation
// bumps a revision and publishes the resulting View, so an edit and the
// render it causes are observed in the order they were issued.
package studio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/deck"
	"github.com/mithrel/marpdeck/internal/export"
	"github.com/mithrel/marpdeck/internal/gesture"
	"github.com/mithrel/marpdeck/internal/layout"
	"github.com/mithrel/marpdeck/internal/logger"
	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/pkg/api"
)

var (
	ErrUnknownRatio = errors.New("unknown aspect ratio")
	ErrClosed       = errors.New("studio closed")
)

type Options struct {
	Style        api.StyleSettings
	Engine       render.Engine
	Slides       []api.Slide
	Margin       float64
	ZoomStep     float64
	EditorRatio  float64
	SidebarWidth float64
	Pointer      gesture.Pointer
	Log          *logger.Logger
}

// Panels holds the resizable chrome geometry.
type Panels struct {
	SidebarWidth float64 `json:"sidebar_width"`
	EditorRatio  float64 `json:"editor_ratio"`
}

type SlideView struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Text  string `json:"text"`
}

// View is an immutable snapshot taken right after a mutation.
type View struct {
	Revision     uint64                `json:"revision"`
	Slides       []SlideView           `json:"slides"`
	Selected     int                   `json:"selected"`
	SelectedHTML string                `json:"selected_html"`
	Style        api.StyleSettings     `json:"style"`
	Dims         api.ContentDimensions `json:"dimensions"`
	Scale        scale.State           `json:"scale"`
	Panels       Panels                `json:"panels"`
	Engine       string                `json:"engine"`
	Gesture      string                `json:"gesture,omitempty"`
}

type Studio struct {
	mu      sync.Mutex
	deck    *deck.Deck
	style   api.StyleSettings
	memo    layout.Memo
	cache   *render.Cache
	engine  render.Engine
	scale   *scale.Engine
	tracker *gesture.Tracker
	reorder *gesture.ReorderSession
	panels  Panels
	log     *logger.Logger

	rev     uint64
	subs    map[int]chan View
	nextSub int
	closed  bool
}

// New builds a studio. Zero options give the default deck (one cover
// slide), default style, canonical engine and default margins.
func New(opts Options) *Studio {
	if opts.Style == (api.StyleSettings{}) {
		opts.Style = api.DefaultStyle()
	}
	if opts.Engine == nil {
		opts.Engine = render.Canonical{}
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Margin == 0 {
		opts.Margin = scale.DefaultMargin
	}
	if opts.EditorRatio == 0 {
		opts.EditorRatio = 0.5
	}
	if opts.SidebarWidth == 0 {
		opts.SidebarWidth = 256
	}
	s := &Studio{
		deck:    deck.FromSlides(opts.Slides),
		style:   opts.Style,
		cache:   render.NewCache(),
		engine:  opts.Engine,
		tracker: gesture.NewTracker(opts.Pointer),
		panels:  Panels{SidebarWidth: opts.SidebarWidth, EditorRatio: opts.EditorRatio},
		log:     opts.Log.With("component", "studio"),
		subs:    make(map[int]chan View),
	}
	s.scale = scale.New(s.memo.Get(s.style),
		scale.WithMargin(opts.Margin),
		scale.WithStep(opts.ZoomStep),
		scale.WithOnChange(func(scale.State) { s.commit(func() bool { return true }) }),
	)
	return s
}

// commit runs fn under the lock and, when it reports a change, bumps the
// revision and publishes the new view before releasing the lock.
func (s *Studio) commit(fn func() bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !fn() {
		return false
	}
	s.rev++
	s.publishLocked(s.viewLocked())
	return true
}

// Snapshot returns the current view.
func (s *Studio) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Studio) viewLocked() View {
	slides := s.deck.Slides()
	views := make([]SlideView, len(slides))
	for i, sl := range slides {
		views[i] = SlideView{Index: i, ID: sl.ID, Kind: sl.Kind, Name: catalog.DisplayName(sl.Kind), Text: sl.Text}
	}
	sel := s.deck.SelectedSlide()
	v := View{
		Revision:     s.rev,
		Slides:       views,
		Selected:     s.deck.Selected(),
		SelectedHTML: s.cache.Get(s.engine, sel.ID, sel.Text),
		Style:        s.style,
		Dims:         s.memo.Get(s.style),
		Scale:        s.scale.State(),
		Panels:       s.panels,
		Engine:       s.engine.Name(),
	}
	if a, ok := s.tracker.Active(); ok {
		v.Gesture = string(a.Kind())
	}
	return v
}

// RenderSlide returns the HTML for the slide at index.
func (s *Studio) RenderSlide(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.deck.At(index)
	if !ok {
		return "", deck.ErrOutOfRange
	}
	return s.cache.Get(s.engine, sl.ID, sl.Text), nil
}

// Export returns the deck as a Marp document.
func (s *Studio) Export() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return export.Document(s.deck.Slides(), s.style)
}

// Import replaces the deck and style with a parsed document.
func (s *Studio) Import(doc string) error {
	in, err := export.Import(doc)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	s.commit(func() bool {
		s.deck = deck.FromSlides(in.Slides)
		s.style = in.Style
		s.scale.SetDimensions(s.memo.Get(s.style))
		s.cache.Prune(s.deck.IDs())
		return true
	})
	s.log.Info("deck imported", "slides", len(in.Slides))
	return nil
}

// Close aborts any gesture, refuses further mutations and closes every
// subscription.
func (s *Studio) Close() {
	s.tracker.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}
