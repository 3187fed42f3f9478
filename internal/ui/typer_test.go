package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/asciiart"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/logging"
	"github.com/five82/multiterm/internal/theme"
)

func newTestTyper(t *testing.T, copied *string, lines ...string) TyperModel {
	t.Helper()
	return NewTyper(TyperOptions{
		Themes: theme.NewProvider(theme.DefaultName),
		Locale: i18n.NewProvider(i18n.MustLoadCatalog(), i18n.English),
		Logger: logging.Discard(),
		Lines:  lines,
		CopyText: func(s string) error {
			*copied = s
			return nil
		},
	})
}

func typerUpdate(t *testing.T, m TyperModel, msg tea.Msg) (TyperModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(TyperModel)
	require.True(t, ok)
	return out, cmd
}

func TestTyperLines(t *testing.T) {
	var copied string
	m := newTestTyper(t, &copied, "hi")
	assert.Equal(t, []string{"hi"}, m.Lines())

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = typerUpdate(t, m, runes("yo"))
	assert.Equal(t, []string{"hi", "yo"}, m.Lines())
	assert.Equal(t, 1, m.focus)

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.focus)

	m, cmd := typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Equal(t, []string{"yo"}, m.Lines())
	require.NotNil(t, cmd)

	// The last line cannot be removed.
	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Equal(t, []string{"yo"}, m.Lines())
}

func TestNewTyperDefaultsProviders(t *testing.T) {
	m := NewTyper(TyperOptions{
		Logger: logging.Discard(),
		Lines:  []string{"hi"},
	})
	require.NotNil(t, m.themes)
	require.NotNil(t, m.locale)
	assert.Equal(t, theme.DefaultName, m.themes.Name())
	assert.Equal(t, i18n.English, m.locale.Locale())

	m, _ = typerUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestTyperDefaultLine(t *testing.T) {
	var copied string
	m := newTestTyper(t, &copied)
	assert.Equal(t, []string{"Gradient Text"}, m.Lines())
}

func TestTyperColors(t *testing.T) {
	var copied string
	m := newTestTyper(t, &copied, "a")
	presets := asciiart.Presets()
	start := m.Style()

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, presets[4].Hex, m.Style().Text.Start)

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, presets[1].Hex, m.Style().Background.Start)

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.NotEqual(t, start.Text.Gradient, m.Style().Text.Gradient)

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.NotEqual(t, start.Background.Gradient, m.Style().Background.Gradient)

	m, _ = typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.True(t, m.Style().Background.Gradient)
	assert.Equal(t, presets[11].Hex, m.Style().Background.End)
}

func TestTyperCopyText(t *testing.T) {
	var copied string
	m := newTestTyper(t, &copied, "ok")

	m, cmd := typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, asciiart.Plain(asciiart.RenderLines([]string{"ok"})), copied)
	m, _ = typerUpdate(t, m, msg)
	assert.Equal(t, "Copied to clipboard", m.status)
	assert.Contains(t, m.View(), "Copied to clipboard")
}

func TestTyperCopyImageWithoutShooter(t *testing.T) {
	var copied string
	m := newTestTyper(t, &copied, "ok")
	_, cmd := typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
}

func TestTyperQuits(t *testing.T) {
	var copied string
	m := newTestTyper(t, &copied, "ok")
	_, cmd := typerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
