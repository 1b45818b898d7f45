package gesture

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePointer struct {
	mu        sync.Mutex
	captured  int
	released  int
	cursor    string
	cursorSet []string
}

func (p *fakePointer) Capture() func() {
	p.mu.Lock()
	p.captured++
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.released++
		p.mu.Unlock()
	}
}

func (p *fakePointer) SetCursor(c string) func() {
	p.mu.Lock()
	prev := p.cursor
	p.cursor = c
	p.cursorSet = append(p.cursorSet, c)
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.cursor = prev
		p.mu.Unlock()
	}
}

func TestSessionAcquiresAndReleases(t *testing.T) {
	p := &fakePointer{}
	tr := NewTracker(p)

	s, err := tr.BeginSidebarResize(0, 256, func(float64) {})
	require.NoError(t, err)
	assert.Equal(t, 1, p.captured)
	assert.Equal(t, CursorColResize, p.cursor)

	s.End()
	s.End()
	assert.Equal(t, 1, p.released)
	assert.Equal(t, "", p.cursor)
	_, ok := tr.Active()
	assert.False(t, ok)
}

// slowPointer takes a moment to install its listeners, leaving room for a
// release to arrive while Begin is still running.
type slowPointer struct{ fakePointer }

func (p *slowPointer) Capture() func() {
	time.Sleep(time.Millisecond)
	return p.fakePointer.Capture()
}

func TestReleaseDuringBeginStillReleasesListeners(t *testing.T) {
	p := &slowPointer{}
	tr := NewTracker(p)
	for i := 0; i < 50; i++ {
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, ok := tr.Active(); ok {
					tr.Release()
					return
				}
				time.Sleep(10 * time.Microsecond)
			}
		}()
		s, err := tr.BeginSidebarResize(0, 256, func(float64) {})
		require.NoError(t, err)
		<-done
		s.End()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, 50, p.captured)
	assert.Equal(t, p.captured, p.released)
	assert.Equal(t, "", p.cursor)
	_, ok := tr.Active()
	assert.False(t, ok)
}

func TestOneSessionAtATime(t *testing.T) {
	tr := NewTracker(nil)
	s, err := tr.BeginReorder(0, func(int, int) bool { return true })
	require.NoError(t, err)

	_, err = tr.BeginSidebarResize(0, 256, func(float64) {})
	assert.ErrorIs(t, err, ErrBusy)

	s.End()
	_, err = tr.BeginSidebarResize(0, 256, func(float64) {})
	assert.NoError(t, err)
}

func TestAbortAndClose(t *testing.T) {
	p := &fakePointer{}
	tr := NewTracker(p)
	s, err := tr.BeginSplitResize(Rect{Width: 1000, Height: 800}, true, nil, func(float64) {})
	require.NoError(t, err)

	tr.Close()
	assert.False(t, s.Active())
	assert.Equal(t, 1, p.released)
	assert.Equal(t, "", p.cursor)

	_, err = tr.BeginSidebarResize(0, 0, func(float64) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMoveAfterEndIgnored(t *testing.T) {
	tr := NewTracker(nil)
	var calls int
	s, err := tr.BeginSidebarResize(0, 256, func(float64) { calls++ })
	require.NoError(t, err)
	s.Move(10, 0)
	s.End()
	s.Move(20, 0)
	assert.Equal(t, 1, calls)
	assert.False(t, tr.Move(30, 0))
}

func TestSidebarResizeRange(t *testing.T) {
	tr := NewTracker(nil)
	var widths []float64
	_, err := tr.BeginSidebarResize(100, 256, func(w float64) { widths = append(widths, w) })
	require.NoError(t, err)

	tr.Move(150, 0) // 306
	tr.Move(400, 0) // 556, ignored
	tr.Move(0, 0)   // 156, ignored
	tr.Move(44, 0)  // 200
	assert.Equal(t, []float64{306, 200}, widths)
	assert.True(t, tr.Release())
}

func TestSplitResizeAxes(t *testing.T) {
	tests := []struct {
		name       string
		horizontal bool
		x, y       float64
		want       []float64
		cursor     string
	}{
		{"horizontal", true, 300, 9999, []float64{0.3}, CursorColResize},
		{"vertical", false, 9999, 600, []float64{0.75}, CursorRowResize},
		{"out of range", true, 50, 0, nil, CursorColResize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePointer{}
			tr := NewTracker(p)
			var got []float64
			_, err := tr.BeginSplitResize(Rect{Left: 0, Top: 0, Width: 1000, Height: 800}, tc.horizontal, nil,
				func(r float64) { got = append(got, r) })
			require.NoError(t, err)
			tr.Move(tc.x, tc.y)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.cursor, p.cursor)
		})
	}
}

func TestSplitResizeFreezesBeforeCapture(t *testing.T) {
	p := &fakePointer{}
	tr := NewTracker(p)
	var capturedAtFreeze = -1
	_, err := tr.BeginSplitResize(Rect{Width: 100, Height: 100}, true, func() {
		capturedAtFreeze = p.captured
	}, func(float64) {})
	require.NoError(t, err)
	assert.Equal(t, 0, capturedAtFreeze)
}

func TestSplitFreezeSkippedWhenBusy(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.BeginReorder(1, func(int, int) bool { return true })
	require.NoError(t, err)

	froze := false
	_, err = tr.BeginSplitResize(Rect{Width: 1}, true, func() { froze = true }, func(float64) {})
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, froze)
}

func TestReorderDrop(t *testing.T) {
	tr := NewTracker(nil)
	var moves [][2]int
	r, err := tr.BeginReorder(2, func(from, to int) bool {
		moves = append(moves, [2]int{from, to})
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.From())
	assert.Equal(t, KindReorder, r.Kind())

	assert.True(t, r.Drop(0))
	assert.False(t, r.Drop(1), "session ended")
	assert.Equal(t, [][2]int{{2, 0}}, moves)
	_, ok := tr.Active()
	assert.False(t, ok)
}

func TestReorderReleaseWithoutDrop(t *testing.T) {
	tr := NewTracker(nil)
	called := false
	_, err := tr.BeginReorder(0, func(int, int) bool { called = true; return true })
	require.NoError(t, err)
	tr.Release()
	assert.False(t, called)
}

func TestHorizontalBreakpoint(t *testing.T) {
	assert.True(t, Horizontal(1024))
	assert.False(t, Horizontal(1023))
}
