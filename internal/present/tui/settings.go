package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/pkg/api"
)

func (m model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	style := m.view.Style
	switch msg.String() {
	case "esc", "s", "q":
		m.overlay = overlayNone
		return m, nil
	case "r":
		_ = m.st.SetAspectRatio(nextRatio(style.AspectRatio().Key))
	case "f":
		m.st.SetFontSize(style.FontSizePx() - 1)
	case "F":
		m.st.SetFontSize(style.FontSizePx() + 1)
	case "l":
		m.st.SetLineSpacing(math.Round((style.LineSpacing()-0.1)*10) / 10)
	case "L":
		m.st.SetLineSpacing(math.Round((style.LineSpacing()+0.1)*10) / 10)
	case "g":
		next := render.EngineGFM
		if m.view.Engine == render.EngineGFM {
			next = render.EngineCanonical
		}
		_ = m.st.SetEngine(next)
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func nextRatio(key string) string {
	rs := api.AspectRatios()
	for i, r := range rs {
		if r.Key == key {
			return rs[(i+1)%len(rs)].Key
		}
	}
	return rs[0].Key
}

var modalBox = lipglossv2.NewStyle().
	Padding(1, 2).
	Border(lipglossv2.RoundedBorder()).
	BorderForeground(lipglossv2.Color("63"))

// settingsBody lists the style controls and the content guidelines the
// current style implies.
func (m model) settingsBody(innerW int) string {
	st, d := m.view.Style, m.view.Dims
	r := st.AspectRatio()
	var b strings.Builder
	b.WriteString("Slide settings\n\n")
	fmt.Fprintf(&b, "r    aspect ratio   %s\n", r.Name)
	fmt.Fprintf(&b, "f/F  font size      %dpx\n", st.FontSizePx())
	fmt.Fprintf(&b, "l/L  line spacing   %g\n", st.LineSpacing())
	fmt.Fprintf(&b, "g    engine         %s\n\n", m.view.Engine)
	b.WriteString("Content guidelines\n\n")
	guide := fmt.Sprintf("Slide %d×%d px, content area %d×%d px. Roughly %d characters per line and %d lines per slide at this size.",
		d.SlideWidthPx, d.SlideHeightPx, d.ContentWidthPx, d.ContentHeightPx, d.EstCharsPerLine, d.EstLinesPerSlide)
	b.WriteString(wordwrap.String(guide, innerW))
	b.WriteString("\n\nesc closes")
	return b.String()
}

func (m model) templatesBody() string {
	var b strings.Builder
	b.WriteString("Add slide\n\n")
	for i, t := range catalog.Templates() {
		fmt.Fprintf(&b, "%d  %s\n", i+1, t.DisplayName)
	}
	fmt.Fprintf(&b, "c  %s\n\nesc cancels", catalog.CustomName)
	return b.String()
}

// modal renders body in the modal frame at most maxW cells wide and
// returns it with its outer size.
func modal(body string, maxW int) (string, int, int) {
	w := min(maxW, 56)
	out := modalBox.Width(w).Render(body)
	return out, lipglossv2.Width(out), lipglossv2.Height(out)
}
