// Package gesture scopes pointer drags (panel resizes, slide reorder) as
// sessions. A Tracker allows one active session; ending a session releases
// its pointer listeners and restores the cursor on every exit path.
package gesture

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrBusy is returned by Begin while another session is active.
	ErrBusy = errors.New("another gesture is in progress")
	// ErrClosed is returned by Begin after the owning surface was torn down.
	ErrClosed = errors.New("gesture tracker closed")
)

type Kind string

const (
	KindSidebar Kind = "sidebar-resize"
	KindSplit   Kind = "split-resize"
	KindReorder Kind = "reorder"
)

const (
	CursorColResize = "col-resize"
	CursorRowResize = "row-resize"
	CursorGrabbing  = "grabbing"
)

// Pointer is the platform side of a drag: process-wide move/release
// listeners and a global cursor indicator.
type Pointer interface {
	// Capture starts routing pointer events to the tracker.
	Capture() (release func())
	// SetCursor shows cursor until restore is called.
	SetCursor(cursor string) (restore func())
}

// NopPointer is a Pointer for surfaces without a real pointer, such as the
// HTTP API where moves arrive as requests.
type NopPointer struct{}

func (NopPointer) Capture() func()         { return func() {} }
func (NopPointer) SetCursor(string) func() { return func() {} }

// Tracker owns the single active session.
type Tracker struct {
	mu      sync.Mutex
	pointer Pointer
	active  *Session
	closed  bool
}

func NewTracker(p Pointer) *Tracker {
	if p == nil {
		p = NopPointer{}
	}
	return &Tracker{pointer: p}
}

// Session is one drag. Move and End are safe to call after the session has
// ended; they do nothing.
type Session struct {
	t     *Tracker
	kind  Kind
	move  func(x, y float64)
	ended atomic.Bool
	once  sync.Once

	// Guarded by t.mu. done is set by End; whichever of Begin and End
	// sees the listeners second releases them.
	release func()
	restore func()
	done    bool
}

// Begin starts a session. onStart runs after the busy check and before the
// pointer is captured; move receives pointer positions until End.
func (t *Tracker) Begin(kind Kind, cursor string, onStart func(), move func(x, y float64)) (*Session, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrClosed
	}
	if t.active != nil {
		t.mu.Unlock()
		return nil, ErrBusy
	}
	s := &Session{t: t, kind: kind, move: move}
	t.active = s
	t.mu.Unlock()

	if onStart != nil {
		onStart()
	}
	release := t.pointer.Capture()
	restore := t.pointer.SetCursor(cursor)

	t.mu.Lock()
	if s.done {
		t.mu.Unlock()
		release()
		restore()
		return s, nil
	}
	s.release, s.restore = release, restore
	t.mu.Unlock()
	return s, nil
}

func (s *Session) Kind() Kind { return s.kind }

// Active reports whether the session has not ended.
func (s *Session) Active() bool { return !s.ended.Load() }

// Move forwards a pointer position to the session handler.
func (s *Session) Move(x, y float64) {
	if s.ended.Load() || s.move == nil {
		return
	}
	s.move(x, y)
}

// End releases the pointer listeners and restores the cursor. It is
// idempotent.
func (s *Session) End() {
	s.once.Do(func() {
		s.ended.Store(true)
		s.t.mu.Lock()
		s.done = true
		release, restore := s.release, s.restore
		s.release, s.restore = nil, nil
		if s.t.active == s {
			s.t.active = nil
		}
		s.t.mu.Unlock()
		if release != nil {
			release()
		}
		if restore != nil {
			restore()
		}
	})
}

// Active returns the running session, if any.
func (t *Tracker) Active() (*Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, t.active != nil
}

// Move routes a pointer move to the active session.
func (t *Tracker) Move(x, y float64) bool {
	s, ok := t.Active()
	if !ok {
		return false
	}
	s.Move(x, y)
	return true
}

// Release ends the active session, as a pointer-up anywhere would.
func (t *Tracker) Release() bool {
	s, ok := t.Active()
	if !ok {
		return false
	}
	s.End()
	return true
}

// Abort ends any active session. It is the abnormal-exit path.
func (t *Tracker) Abort() { t.Release() }

// Close aborts the active session and refuses new ones. Call it when the
// surface owning the pointer goes away.
func (t *Tracker) Close() {
	t.Abort()
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}
