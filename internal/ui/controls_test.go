package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/shortcuts"
)

func TestControlSpansDoNotOverlap(t *testing.T) {
	m := sized(t)
	spans := m.controlSpans()
	require.Len(t, spans, len(m.controlButtons()))

	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].end+1, spans[i].start)
	}
	for _, s := range spans {
		action, ok := m.hitControl(s.start)
		require.True(t, ok)
		assert.Equal(t, s.action, action)
	}

	_, ok := m.hitControl(0)
	assert.False(t, ok)
	_, ok = m.hitControl(spans[0].end)
	assert.False(t, ok, "gap between buttons")
}

func TestRenderControls(t *testing.T) {
	m := sized(t)
	m = update(t, m, runes("+"))

	bar := m.renderControls()
	assert.Equal(t, m.width, lipgloss.Width(bar))
	assert.Equal(t, 1, lipgloss.Height(bar))
	assert.Contains(t, bar, "11 terminals")
	assert.Contains(t, bar, "2 cats")
}

func TestRenderControlsShowsStatus(t *testing.T) {
	m := sized(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Contains(t, m.renderControls(), "Animation paused")
}

func TestControlButtonsFollowLocale(t *testing.T) {
	m := sized(t)
	before := m.controlButtons()

	m.locale.Toggle()
	after := m.controlButtons()

	for i := range before {
		assert.Equal(t, before[i].action, after[i].action)
	}
	assert.NotEqual(t, before[4].label, after[4].label)
	assert.Equal(t, shortcuts.ArrangeTerminals, after[4].action)
}
