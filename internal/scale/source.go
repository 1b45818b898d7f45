package scale

import (
	"sync"

	"github.com/mithrel/marpdeck/pkg/api"
)

// SizeSource is a level-triggered container size subscription. Subscribe
// delivers the current size (when known) and every later change to fn until
// the returned function is called.
type SizeSource interface {
	Subscribe(fn func(api.Box)) (unsubscribe func())
}

// Attach subscribes the engine to src. An engine observes at most one live
// container; attaching again before detaching returns ErrAttached. The
// returned detach is idempotent.
func (e *Engine) Attach(src SizeSource) (detach func(), err error) {
	e.mu.Lock()
	if e.detach != nil {
		e.mu.Unlock()
		return nil, ErrAttached
	}
	// Reserve the slot before subscribing: sources may deliver synchronously.
	e.detach = func() {}
	e.mu.Unlock()

	unsub := src.Subscribe(e.Resize)

	var once sync.Once
	detach = func() {
		once.Do(func() {
			unsub()
			e.mu.Lock()
			e.detach = nil
			e.mu.Unlock()
		})
	}
	e.mu.Lock()
	e.detach = detach
	e.mu.Unlock()
	return detach, nil
}

// Attached reports whether a size source is currently attached.
func (e *Engine) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.detach != nil
}

// Feed is a SizeSource fed by callers that own the real container, such as
// the terminal window or an HTTP viewport report.
type Feed struct {
	mu    sync.Mutex
	last  api.Box
	known bool
	next  int
	subs  map[int]func(api.Box)
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]func(api.Box))}
}

func (f *Feed) Subscribe(fn func(api.Box)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = fn
	last, known := f.last, f.known
	f.mu.Unlock()

	if known {
		fn(last)
	}
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Publish records box and delivers it to every subscriber.
func (f *Feed) Publish(box api.Box) {
	f.mu.Lock()
	f.last, f.known = box, true
	fns := make([]func(api.Box), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(box)
	}
}

// Last returns the most recent box and whether one was published.
func (f *Feed) Last() (api.Box, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.known
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
