package tui

import (
	"math"

	"github.com/mithrel/marpdeck/internal/gesture"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

// A terminal cell stands in for this many CSS pixels when talking to the
// layout and scale engines.
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)

// Geometry places the studio panes on a terminal of Width x Height cells.
// The last row is the status line; column SidebarCols is the sidebar edge.
type Geometry struct {
	Width, Height int
	Horizontal    bool
	SidebarCols   int
	MainX         int
	MainW, MainH  int
	// SplitAt is the divider column (horizontal) or row (stacked).
	SplitAt            int
	EditorW, EditorH   int
	PreviewX, PreviewY int
	PreviewW, PreviewH int
}

func ComputeGeometry(w, h int, p studio.Panels) Geometry {
	g := Geometry{Width: w, Height: h}
	g.Horizontal = gesture.Horizontal(float64(w) * CellWidthPx)
	g.SidebarCols = clampInt(int(math.Round(p.SidebarWidth/CellWidthPx)), 1, max(1, w-3))
	g.MainX = g.SidebarCols + 1
	g.MainW = max(0, w-g.MainX)
	g.MainH = max(0, h-1)
	if g.Horizontal {
		g.EditorW = int(math.Round(float64(g.MainW) * p.EditorRatio))
		g.EditorH = g.MainH
		g.SplitAt = g.MainX + g.EditorW
		g.PreviewX = g.SplitAt + 1
		g.PreviewW = max(0, g.MainW-g.EditorW-1)
		g.PreviewH = g.MainH
		return g
	}
	g.EditorW = g.MainW
	g.EditorH = int(math.Round(float64(g.MainH) * p.EditorRatio))
	g.SplitAt = g.EditorH
	g.PreviewX = g.MainX
	g.PreviewY = g.SplitAt + 1
	g.PreviewW = g.MainW
	g.PreviewH = max(0, g.MainH-g.EditorH-1)
	return g
}

// PreviewBox is the preview body (below its title row) in pixels.
func (g Geometry) PreviewBox() api.Box {
	return api.Box{
		Width:  float64(g.PreviewW) * CellWidthPx,
		Height: float64(max(0, g.PreviewH-1)) * CellHeightPx,
	}
}

// Container is the editor+preview area in pixels, the split gesture's
// reference box.
func (g Geometry) Container() gesture.Rect {
	return gesture.Rect{
		Left:   float64(g.MainX) * CellWidthPx,
		Width:  float64(g.MainW) * CellWidthPx,
		Height: float64(g.MainH) * CellHeightPx,
	}
}

// ViewportPx is the terminal width in pixels.
func (g Geometry) ViewportPx() float64 { return float64(g.Width) * CellWidthPx }

func (g Geometry) OnSidebarEdge(x, y int) bool {
	return x == g.SidebarCols && y < g.MainH
}

func (g Geometry) OnSplit(x, y int) bool {
	if g.Horizontal {
		return x == g.SplitAt && y < g.MainH
	}
	return y == g.SplitAt && x >= g.MainX
}

func (g Geometry) InEditor(x, y int) bool {
	if x < g.MainX || y >= g.MainH {
		return false
	}
	if g.Horizontal {
		return x < g.SplitAt
	}
	return y < g.SplitAt
}

// ListRows is how many slide rows fit under the sidebar title.
func (g Geometry) ListRows() int { return max(0, g.MainH-1) }

// SlideRow maps a sidebar cell to a list row, top is the first visible
// slide.
func (g Geometry) SlideRow(x, y, top, n int) (int, bool) {
	if x >= g.SidebarCols || y < 1 || y >= g.MainH {
		return 0, false
	}
	i := top + y - 1
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// PreviewCols is the glamour wrap width for a slide drawn at scale.
func PreviewCols(scale float64, dims api.ContentDimensions, paneW int) int {
	c := int(math.Floor(scale * float64(dims.SlideWidthPx) / CellWidthPx))
	return clampInt(c, 1, max(1, paneW))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
