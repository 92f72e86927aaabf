// Package tui is a terminal viewer for automata built on bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cmr-ca/internal/core"
	"cmr-ca/internal/render"
)

const glyphs = "0123456789abcdefghijklmnopqrstuvwxyz"

type tickMsg struct{ id int }

// Model drives an automaton from the keyboard.
//
//	space     play / pause
//	n         step from the live generation
//	[ ]       back / forward through history
//	arrows    move the edit cursor (also h j k l)
//	0-9       paint the cursor cell
//	r         reset to generation 0
//	q         quit
type Model struct {
	a        core.Automaton
	row, col int
	playing  bool
	// ticks invalidates stale tick messages after pause/resume.
	ticks    int
	interval time.Duration
	status   string
	styles   []lipgloss.Style
	quitting bool
}

// New returns a paused model over a, stepping every interval while playing.
func New(a core.Automaton, interval time.Duration) Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	size := a.Size()
	pal := render.Palette(a.States())
	styles := make([]lipgloss.Style, len(pal))
	for i, c := range pal {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	}
	return Model{
		a:        a,
		row:      size.H / 2,
		col:      size.W / 2,
		interval: interval,
		styles:   styles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Playing reports whether the automaton is advancing on its own.
func (m Model) Playing() bool { return m.playing }

// Cursor returns the edit cursor position.
func (m Model) Cursor() (row, col int) { return m.row, m.col }

// Status returns the last error or notice shown in the footer.
func (m Model) Status() string { return m.status }

func (m Model) tick() tea.Cmd {
	id := m.ticks
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.playing || msg.id != m.ticks {
			return m, nil
		}
		m.forward()
		if !m.playing {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		m.status = ""
		size := m.a.Size()
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			m.ticks++
			if m.playing {
				return m, m.tick()
			}
		case "n":
			if err := m.a.Step(); err != nil {
				m.status = err.Error()
			}
		case "[":
			m.a.Back(1)
		case "]":
			m.forward()
		case "r":
			m.a.Reset()
		case "up", "k":
			m.row = max(m.row-1, 0)
		case "down", "j":
			m.row = min(m.row+1, size.H-1)
		case "left", "h":
			m.col = max(m.col-1, 0)
		case "right", "l":
			m.col = min(m.col+1, size.W-1)
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				if err := m.a.Set(m.row, m.col, key[0]-'0'); err != nil {
					m.status = err.Error()
				}
			}
		}
	}
	return m, nil
}

func (m *Model) forward() {
	if _, err := m.a.Forward(1); err != nil {
		m.status = err.Error()
		m.playing = false
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	size := m.a.Size()
	cells := m.a.Cells()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.a.Name()))
	b.WriteString(" ")
	state := "paused"
	if m.playing {
		state = "playing"
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("gen %d/%d  %s", m.a.Generation(), m.a.Generations()-1, state)))
	b.WriteString("\n\n")

	for r := 0; r < size.H; r++ {
		for c := 0; c < size.W; c++ {
			v := cells[r*size.W+c]
			cell := m.glyph(v)
			if r == m.row && c == m.col {
				cell = cursorStyle.Render(string(glyph(v)))
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("cursor %d,%d = %d", m.row, m.col, cells[m.row*size.W+m.col])
	if m.status != "" {
		footer += "  " + errorStyle.Render(m.status)
	}
	b.WriteString(infoStyle.Render(footer))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space play  n step  [ ] history  arrows move  0-9 paint  r reset  q quit"))
	return b.String()
}

func (m Model) glyph(v uint8) string {
	s := string(glyph(v))
	if int(v) < len(m.styles) {
		return m.styles[v].Render(s)
	}
	return s
}

func glyph(v uint8) byte {
	if v == 0 {
		return '.'
	}
	if int(v) < len(glyphs) {
		return glyphs[v]
	}
	return '#'
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// Run starts the viewer on the terminal and blocks until the user quits.
func Run(a core.Automaton, interval time.Duration) error {
	_, err := tea.NewProgram(New(a, interval), tea.WithAltScreen()).Run()
	return err
}
