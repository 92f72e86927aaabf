package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmr-ca/internal/core"
	"cmr-ca/internal/presets"
)

func newModel(t *testing.T) (Model, core.Automaton) {
	t.Helper()
	a, err := presets.Open("diamond", map[string]string{"rows": "5", "cols": "5"})
	require.NoError(t, err)
	return New(a, time.Millisecond), a
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestStepAndHistoryKeys(t *testing.T) {
	m, a := newModel(t)
	m = press(t, m, runes("n"), runes("n"))
	assert.Equal(t, 2, a.Generation())

	m = press(t, m, runes("["), runes("["))
	assert.Equal(t, 0, a.Generation())
	assert.Equal(t, 3, a.Generations())

	m = press(t, m, runes("]"))
	assert.Equal(t, 1, a.Generation())

	press(t, m, runes("r"))
	assert.Equal(t, 0, a.Generation())
	assert.Equal(t, 1, a.Generations())
}

func TestCursorAndPaint(t *testing.T) {
	m, a := newModel(t)
	row, col := m.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, runes("l"))
	row, col = m.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 3, col)

	m = press(t, m, runes("1"))
	assert.Equal(t, uint8(1), a.Get(0, 3))
	assert.Empty(t, m.Status())

	m = press(t, m, runes("7"))
	assert.NotEmpty(t, m.Status())
	assert.Equal(t, uint8(1), a.Get(0, 3))
}

func TestPlayTicks(t *testing.T) {
	m, a := newModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Playing())

	next, cmd = m.Update(tickMsg{id: m.ticks})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, a.Generation())

	stale := m.ticks
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.Playing())
	_, cmd = m.Update(tickMsg{id: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, a.Generation())
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestView(t *testing.T) {
	m, _ := newModel(t)
	view := m.View()
	assert.Contains(t, view, "diamond")
	assert.Contains(t, view, "gen 0/0")
	assert.Contains(t, view, "cursor 2,2 = 1")
	assert.GreaterOrEqual(t, strings.Count(view, "\n"), 5)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, byte('.'), glyph(0))
	assert.Equal(t, byte('3'), glyph(3))
	assert.Equal(t, byte('a'), glyph(10))
	assert.Equal(t, byte('#'), glyph(200))
}
