package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/mithrel/marpdeck/internal/gesture"
	"github.com/mithrel/marpdeck/internal/present/format"
	"github.com/mithrel/marpdeck/pkg/api"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	draggingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeDivider = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m model) View() string {
	g := m.geo
	if g.Width <= 0 || g.Height <= 0 {
		return "loading…"
	}
	if g.MainW < 4 || g.MainH < 3 {
		return "terminal too small"
	}

	sidebar := box(m.sidebarView(), g.SidebarCols, g.MainH)
	edge := m.divider(gesture.KindSidebar, true, g.MainH)

	editor := box(m.editorView(), g.EditorW, g.EditorH)
	preview := box(m.previewView(), g.PreviewW, g.PreviewH)
	var main string
	if g.Horizontal {
		main = lipgloss.JoinHorizontal(lipgloss.Top, editor, m.divider(gesture.KindSplit, true, g.MainH), preview)
	} else {
		main = lipgloss.JoinVertical(lipgloss.Left, editor, m.divider(gesture.KindSplit, false, g.MainW), preview)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, edge, box(main, g.MainW, g.MainH))
	status := statusStyle.Render(truncate.StringWithTail(m.statusLine(), uint(g.Width), "…"))
	base := lipgloss.JoinVertical(lipgloss.Left, body, status)

	switch m.overlay {
	case overlaySettings:
		fg, w, h := modal(m.settingsBody(min(52, g.Width-6)), g.Width-2)
		return m.renderOverlay(base, fg, w, h)
	case overlayTemplates:
		fg, w, h := modal(m.templatesBody(), g.Width-2)
		return m.renderOverlay(base, fg, w, h)
	}
	return base
}

// box pins s to exactly w x h cells.
func box(s string, w, h int) string {
	return lipgloss.NewStyle().Width(w).Height(h).MaxWidth(w).MaxHeight(h).Render(s)
}

func (m model) divider(kind gesture.Kind, vertical bool, n int) string {
	st := dividerStyle
	if k, ok := m.st.ActiveGesture(); ok && k == kind {
		st = activeDivider
	}
	if n <= 0 {
		return ""
	}
	if vertical {
		return st.Render(strings.TrimSuffix(strings.Repeat("│\n", n), "\n"))
	}
	return st.Render(strings.Repeat("─", n))
}

func (m model) sidebarView() string {
	g := m.geo
	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate.StringWithTail(fmt.Sprintf("Slides (%d)", len(m.view.Slides)), uint(g.SidebarCols), "…")))
	dragging := false
	if k, ok := m.st.ActiveGesture(); ok && k == gesture.KindReorder {
		dragging = true
	}
	rows := g.ListRows()
	for i := m.listTop; i < len(m.view.Slides) && i < m.listTop+rows; i++ {
		s := m.view.Slides[i]
		title := format.Title(api.Slide{ID: s.ID, Kind: s.Kind, Text: s.Text})
		line := truncate.StringWithTail(fmt.Sprintf("%2d %s", i+1, title), uint(g.SidebarCols), "…")
		b.WriteByte('\n')
		switch {
		case i == m.view.Selected && dragging:
			b.WriteString(draggingStyle.Render(line))
		case i == m.view.Selected:
			b.WriteString(selectedStyle.Render(line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

func (m model) editorView() string {
	title := "Editor"
	if s := m.selected(); s.ID != "" {
		title = fmt.Sprintf("Editor · %s", s.Name)
	}
	if m.focus == focusEditor {
		title += " (esc to leave)"
	}
	title = truncate.StringWithTail(title, uint(max(1, m.geo.EditorW)), "…")
	return titleStyle.Render(title) + "\n" + m.editor.View()
}

func (m model) previewView() string {
	sc := m.view.Scale
	title := fmt.Sprintf("Preview · %s · %d%%", sc.ZoomLabel, int(sc.Effective*100+0.5))
	title = truncate.StringWithTail(title, uint(max(1, m.geo.PreviewW)), "…")
	return titleStyle.Render(title) + "\n" + m.preview.View()
}

func (m model) statusLine() string {
	d := m.view.Dims
	r := m.view.Style.AspectRatio()
	return fmt.Sprintf("%s │ %s %dpx ~%d×%d │ %s", m.status, r.Key, m.view.Style.FontSizePx(), d.EstCharsPerLine, d.EstLinesPerSlide, m.view.Engine)
}
