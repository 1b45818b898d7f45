// Package scale computes the on-screen scale of the slide canvas: a fit
// scale tracked from the observed container size, with a zoom state
// machine layered on top.
package scale

import (
	"errors"
	"math"
	"sync"

	"github.com/mithrel/marpdeck/pkg/api"
)

const (
	DefaultMargin = 16.0
	DefaultStep   = 0.1
	// MinFit keeps the canvas visible in a collapsed container.
	MinFit = 0.01
)

// ErrAttached is returned when an engine is attached to a second source.
var ErrAttached = errors.New("scale engine already attached to a size source")

// FitScale is the largest scale at which a slide of dims fits in box after
// subtracting margin from both axes. It never goes below MinFit.
func FitScale(box api.Box, dims api.ContentDimensions, margin float64) float64 {
	if dims.SlideWidthPx <= 0 || dims.SlideHeightPx <= 0 {
		return MinFit
	}
	w := (box.Width - margin) / float64(dims.SlideWidthPx)
	h := (box.Height - margin) / float64(dims.SlideHeightPx)
	return math.Max(MinFit, math.Min(w, h))
}

// State is a point-in-time reading of the engine.
type State struct {
	Box       api.Box       `json:"box"`
	Observed  bool          `json:"observed"`
	Fit       float64       `json:"fit_scale"`
	Effective float64       `json:"effective_scale"`
	Zoom      api.ZoomState `json:"-"`
	ZoomLabel string        `json:"zoom"`
}

// Engine is safe for concurrent use. Size observations may arrive from any
// goroutine; each one recomputes the fit scale from scratch.
type Engine struct {
	mu       sync.Mutex
	margin   float64
	step     float64
	dims     api.ContentDimensions
	box      api.Box
	observed bool
	fit      float64
	zoom     api.ZoomState

	onChange func(State)
	detach   func()
}

type Option func(*Engine)

func WithMargin(m float64) Option { return func(e *Engine) { e.margin = m } }

func WithStep(s float64) Option {
	return func(e *Engine) {
		if s > 0 {
			e.step = s
		}
	}
}

// WithOnChange registers a callback invoked after every observed resize.
// It runs outside the engine lock.
func WithOnChange(fn func(State)) Option { return func(e *Engine) { e.onChange = fn } }

// New returns an engine in Fit with a fit scale of 1 until the first
// observation arrives.
func New(dims api.ContentDimensions, opts ...Option) *Engine {
	e := &Engine{margin: DefaultMargin, step: DefaultStep, dims: dims, fit: 1}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Resize records a container size observation.
func (e *Engine) Resize(box api.Box) {
	e.mu.Lock()
	e.box = box
	e.observed = true
	e.fit = FitScale(box, e.dims, e.margin)
	st := e.stateLocked()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

// SetDimensions updates the slide size; the fit scale follows immediately
// when a container size is known.
func (e *Engine) SetDimensions(d api.ContentDimensions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dims = d
	if e.observed {
		e.fit = FitScale(e.box, d, e.margin)
	}
}

// FitScale returns the current fit scale, kept current in every zoom state.
func (e *Engine) FitScale() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fit
}

// Effective returns the scale applied to the canvas.
func (e *Engine) Effective() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.effectiveLocked()
}

func (e *Engine) Zoom() api.ZoomState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoom
}

// ZoomIn moves to Manual(effective + step), saturating at the maximum.
func (e *Engine) ZoomIn() api.ZoomState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.zoom = api.Manual(math.Min(api.MaxZoom, e.effectiveLocked()+e.step))
	return e.zoom
}

// ZoomOut moves to Manual(effective - step), saturating at the minimum.
func (e *Engine) ZoomOut() api.ZoomState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.zoom = api.Manual(math.Max(api.MinZoom, e.effectiveLocked()-e.step))
	return e.zoom
}

func (e *Engine) ZoomFit() {
	e.mu.Lock()
	e.zoom = api.Fit()
	e.mu.Unlock()
}

// SetZoom applies an explicit state; Manual values are clamped by api.Manual.
func (e *Engine) SetZoom(z api.ZoomState) {
	e.mu.Lock()
	e.zoom = z
	e.mu.Unlock()
}

// FreezeForResize pins a Fit zoom to the current fit scale so a panel drag
// does not rescale the slide. The fit value is kept as is, even outside
// [MinZoom, MaxZoom]. It reports whether the state changed.
func (e *Engine) FreezeForResize() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.zoom.IsFit() {
		return false
	}
	e.zoom = api.Frozen(e.fit)
	return true
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) effectiveLocked() float64 {
	if e.zoom.IsFit() {
		return e.fit
	}
	return e.zoom.Scale()
}

func (e *Engine) stateLocked() State {
	return State{
		Box:       e.box,
		Observed:  e.observed,
		Fit:       e.fit,
		Effective: e.effectiveLocked(),
		Zoom:      e.zoom,
		ZoomLabel: e.zoom.String(),
	}
}
