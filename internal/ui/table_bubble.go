package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/present/format"
	"github.com/mithrel/marpdeck/pkg/api"
)

// PickSlide opens an interactive Bubble Tea table over slides. It returns the
// index chosen with enter, or ok=false when the user quit without choosing.
func PickSlide(ctx context.Context, slides []api.Slide, selected int) (int, bool, error) {
	p := tea.NewProgram(newPicker(slides, selected), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return 0, false, err
	}
	m := final.(picker)
	return m.chosen, m.picked, nil
}

type picker struct {
	table  table.Model
	chosen int
	picked bool
}

func newPicker(slides []api.Slide, selected int) picker {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Layout", Width: 20},
		{Title: "Title", Width: 40},
		{Title: "ID", Width: 8},
	}

	rows := make([]table.Row, 0, len(slides))
	for i, s := range slides {
		rows = append(rows, table.Row{
			fmt.Sprint(i),
			truncate.StringWithTail(catalog.DisplayName(s.Kind), 20, "…"),
			truncate.StringWithTail(format.Title(s), 40, "…"),
			shortID(s.ID),
		})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(12, max(3, len(rows)+3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	if selected >= 0 && selected < len(rows) {
		t.SetCursor(selected)
	}
	return picker{table: t}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if len(m.table.Rows()) > 0 {
				m.chosen, m.picked = m.table.Cursor(), true
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m picker) View() string {
	if len(m.table.Rows()) == 0 {
		return "(no slides)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter to select • q to exit\n"
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
