// Package tui is a scrollback viewer over rendered lines.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusHeight = 1

type Options struct {
	Title string
	// Lines are already formatted for display and must not contain TABs.
	Lines []string
	// Copy replaces the system clipboard; used by tests.
	Copy func(string) error
	// Inline keeps the output in the terminal scrollback instead of the alt screen.
	Inline bool
}

type Model struct {
	viewport viewport.Model
	lines    []string
	title    string
	status   string
	width    int
	copy     func(string) error
}

func New(opts Options) *Model {
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	title := opts.Title
	if title == "" {
		title = "matrix-render"
	}
	vp := viewport.New(80, 23)
	vp.SetContent(strings.Join(opts.Lines, "\n"))
	vp.GotoBottom()
	return &Model{
		viewport: vp,
		lines:    append([]string(nil), opts.Lines...),
		title:    title,
		width:    80,
		copy:     copyFn,
	}
}

// Run opens the viewer and blocks until the user quits.
func Run(opts Options) error {
	programOptions := []tea.ProgramOption{}
	if !opts.Inline {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(New(opts), programOptions...).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-statusHeight)
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		case "y":
			visible := m.VisibleLines()
			if err := m.copy(strings.Join(visible, "\n")); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = fmt.Sprintf("copied %d lines", len(visible))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// VisibleLines returns the lines currently shown in the viewport.
func (m *Model) VisibleLines() []string {
	start := min(m.viewport.YOffset, len(m.lines))
	end := min(start+m.viewport.Height, len(m.lines))
	return m.lines[start:end]
}

func (m *Model) View() string {
	return m.viewport.View() + "\n" + m.statusBar()
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85"))
)

func (m *Model) statusBar() string {
	info := []string{
		fmt.Sprintf("%d lines", len(m.lines)),
		fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100),
		"q quit · g/G top/bottom · y copy",
	}
	if m.status != "" {
		info = append(info, m.status)
	}
	left := titleStyle.Render(m.title)
	right := dimStyle.Render(strings.Join(info, " • "))
	return lipgloss.NewStyle().
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().PaddingLeft(2).Render(right)))
}
