package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/marpdeck/internal/gesture"
)

// handleMouse turns cell events into gesture calls in pixel coordinates.
// Pressing a slide row selects it and picks it up for reordering;
// releasing over another row drops it there.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay != overlayNone {
		return m, nil
	}
	g := m.geo
	x, y := msg.X, msg.Y
	px, py := float64(x)*CellWidthPx, float64(y)*CellHeightPx
	var cmd tea.Cmd

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if x >= g.PreviewX && y >= g.PreviewY && !g.InEditor(x, y) {
				m.preview, cmd = m.preview.Update(msg)
			}
			return m, cmd
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		var err error
		switch {
		case g.OnSidebarEdge(x, y):
			err = m.st.BeginSidebarResize(px)
		case g.OnSplit(x, y):
			err = m.st.BeginSplitResize(g.Container(), g.ViewportPx())
		default:
			if i, ok := g.SlideRow(x, y, m.listTop, len(m.view.Slides)); ok {
				m.st.SelectSlide(i)
				err = m.st.BeginSlideDrag(i)
				if m.focus == focusEditor {
					m.focus = focusList
					m.editor.Blur()
				}
			} else if g.InEditor(x, y) && m.focus != focusEditor {
				m.focus = focusEditor
				cmd = m.editor.Focus()
			}
		}
		if err != nil {
			m.status = err.Error()
		}
	case tea.MouseActionMotion:
		if !m.st.PointerMove(px, py) {
			return m, nil
		}
	case tea.MouseActionRelease:
		dropped := false
		if k, ok := m.st.ActiveGesture(); ok && k == gesture.KindReorder {
			if i, ok := g.SlideRow(x, y, m.listTop, len(m.view.Slides)); ok {
				from := m.view.Selected
				if m.st.DropSlide(i) && from != i {
					m.status = "moved slide"
				}
				dropped = true
			}
		}
		if !dropped {
			m.st.PointerRelease()
		}
	default:
		return m, nil
	}
	m.refresh()
	return m, cmd
}
