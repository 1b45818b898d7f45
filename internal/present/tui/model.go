// Package tui is the terminal slide studio: slide list, editor and a live
// preview driven by one studio.Studio.
package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/present/format"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

type Options struct {
	// Feed receives the preview size; nil resizes the studio directly.
	Feed *scale.Feed
	// GlamourStyle themes the preview; empty uses format.DefaultStyle.
	GlamourStyle string
	// OutPath is where "w" writes the exported document.
	OutPath string
}

type focus int

const (
	focusList focus = iota
	focusEditor
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlaySettings
	overlayTemplates
)

type model struct {
	ctx  context.Context
	st   *studio.Studio
	opts Options

	view     studio.View
	geo      Geometry
	editor   textarea.Model
	preview  viewport.Model
	cache    *previewCache
	editID   string
	focus    focus
	overlay  overlayKind
	listTop  int
	status   string
	lastBox  api.Box
	boxKnown bool
}

// Run opens the studio full screen until the user quits.
func Run(ctx context.Context, st *studio.Studio, opts Options) error {
	m := newModel(ctx, st, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctx context.Context, st *studio.Studio, opts Options) model {
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = format.DefaultStyle
	}
	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.Placeholder = "Slide markdown…"
	ed.CharLimit = 0
	m := model{
		ctx:     ctx,
		st:      st,
		opts:    opts,
		editor:  ed,
		preview: viewport.New(0, 0),
		cache:   &previewCache{},
		status:  "tab/enter edit • a add • d delete • J/K move • +/-/0 zoom • s settings • q quit",
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd { return nil }

// refresh pulls the latest view and brings the editor, layout and preview
// in line with it.
func (m *model) refresh() {
	m.view = m.st.Snapshot()
	sel := m.selected()
	if sel.ID != m.editID || (m.focus != focusEditor && m.editor.Value() != sel.Text) {
		m.editID = sel.ID
		m.editor.SetValue(sel.Text)
	}
	m.keepSelectionVisible()
	if m.geo.Width > 0 {
		m.relayout()
	}
	m.updatePreview()
}

func (m *model) selected() studio.SlideView {
	if m.view.Selected >= 0 && m.view.Selected < len(m.view.Slides) {
		return m.view.Slides[m.view.Selected]
	}
	return studio.SlideView{}
}

// relayout recomputes pane sizes from the terminal size and panel settings
// and reports a changed preview size to the scale engine.
func (m *model) relayout() {
	m.geo = ComputeGeometry(m.geo.Width, m.geo.Height, m.view.Panels)
	m.editor.SetWidth(max(1, m.geo.EditorW))
	m.editor.SetHeight(max(1, m.geo.EditorH-1))
	m.preview.Width = max(1, m.geo.PreviewW)
	m.preview.Height = max(1, m.geo.PreviewH-1)

	box := m.geo.PreviewBox()
	if m.boxKnown && box == m.lastBox {
		return
	}
	m.lastBox, m.boxKnown = box, true
	if m.opts.Feed != nil {
		m.opts.Feed.Publish(box)
	} else {
		m.st.Resize(box)
	}
	m.view = m.st.Snapshot()
}

func (m *model) updatePreview() {
	sel := m.selected()
	cols := PreviewCols(m.view.Scale.Effective, m.view.Dims, m.geo.PreviewW)
	m.preview.SetContent(m.cache.render(m.opts.GlamourStyle, sel.Text, cols))
}

func (m *model) keepSelectionVisible() {
	rows := m.geo.ListRows()
	if rows <= 0 {
		return
	}
	sel := m.view.Selected
	if sel < m.listTop {
		m.listTop = sel
	}
	if sel >= m.listTop+rows {
		m.listTop = sel - rows + 1
	}
	if m.listTop < 0 {
		m.listTop = 0
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.geo.Width, m.geo.Height = msg.Width, msg.Height
		m.refresh()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.overlay {
		case overlaySettings:
			return m.handleSettingsKey(msg)
		case overlayTemplates:
			return m.handleTemplateKey(msg)
		}
		if m.focus == focusEditor {
			return m.handleEditorKey(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.view.Selected
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.st.SelectSlide(sel - 1)
	case "down", "j":
		m.st.SelectSlide(sel + 1)
	case "K", "shift+up":
		m.st.MoveSlide(sel, sel-1)
	case "J", "shift+down":
		m.st.MoveSlide(sel, sel+1)
	case "a":
		m.overlay = overlayTemplates
	case "d", "delete":
		if !m.st.DeleteSlide(sel) {
			m.status = "a deck keeps at least one slide"
		}
	case "enter", "tab", "e", "i":
		m.focus = focusEditor
		m.refresh()
		return m, m.editor.Focus()
	case "+", "=":
		m.status = "zoom " + m.st.ZoomIn().String()
	case "-":
		m.status = "zoom " + m.st.ZoomOut().String()
	case "0":
		m.st.ZoomFit()
		m.status = "zoom Fit"
	case "s":
		m.overlay = overlaySettings
	case "w", "ctrl+s":
		m.status = m.writeExport()
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusList
		m.editor.Blur()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != m.selected().Text {
		m.st.UpdateSelected(v)
		m.refresh()
	}
	return m, cmd
}

func (m model) handleTemplateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := catalog.Kinds()
	switch k := msg.String(); k {
	case "esc", "a", "q":
		m.overlay = overlayNone
		return m, nil
	case "c":
		m.status = "added " + catalog.DisplayName(m.st.AddSlide(api.KindCustom).Kind)
	default:
		if len(k) != 1 || k[0] < '1' || int(k[0]-'1') >= len(kinds) {
			return m, nil
		}
		m.status = "added " + catalog.DisplayName(m.st.AddSlide(kinds[k[0]-'1']).Kind)
	}
	m.overlay = overlayNone
	m.refresh()
	return m, nil
}

func (m *model) writeExport() string {
	if m.opts.OutPath == "" {
		return "no output file; start the studio with --out"
	}
	if err := os.WriteFile(m.opts.OutPath, []byte(m.st.Export()), 0o644); err != nil {
		return fmt.Sprintf("export failed: %v", err)
	}
	return "wrote " + m.opts.OutPath
}
