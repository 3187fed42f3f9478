package ui

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/custom"
	"github.com/five82/multiterm/internal/desktop"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/logging"
	"github.com/five82/multiterm/internal/script"
	"github.com/five82/multiterm/internal/shortcuts"
	"github.com/five82/multiterm/internal/state"
	"github.com/five82/multiterm/internal/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	logger := logging.Discard()
	return New(Options{
		Scripts:   script.MustRegistry(),
		Custom:    custom.NewStore(state.NewMemory(), logger),
		Themes:    theme.NewProvider(theme.DefaultName),
		Locale:    i18n.NewProvider(i18n.MustLoadCatalog(), i18n.English),
		Shortcuts: shortcuts.Default(),
		Logger:    logger,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func sized(t *testing.T) Model {
	t.Helper()
	return update(t, newTestModel(t), tea.WindowSizeMsg{Width: 160, Height: 40})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestCountShortcuts(t *testing.T) {
	m := sized(t)
	require.Equal(t, 1, m.desk.Count())

	steps := []struct {
		key  string
		want int
	}{
		{"=", 2},
		{"+", 12},
		{"_", 2},
		{"-", 1},
		{"-", 1},
	}
	for _, step := range steps {
		m = update(t, m, runes(step.key))
		assert.Equal(t, step.want, m.desk.Count(), "after %q", step.key)
		assert.Equal(t, m.desk.Rendered(), m.arena.Len(), "engines follow windows after %q", step.key)
	}
}

func TestNewTerminalFocusesAndCloses(t *testing.T) {
	m := sized(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, 2, m.desk.Count())
	focused, ok := m.desk.Focused()
	require.True(t, ok)
	assert.Equal(t, 2, focused.Seq)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, 1, m.desk.Count())
	_, ok = m.desk.Get(focused.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, m.arena.Len())
}

func TestPauseToggles(t *testing.T) {
	m := sized(t)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	m = update(t, m, space)
	assert.False(t, m.arena.Enabled())
	assert.Equal(t, "Animation paused", m.status)

	m = update(t, m, space)
	assert.True(t, m.arena.Enabled())
	assert.Equal(t, "Animation resumed", m.status)
}

func TestSpeedShortcuts(t *testing.T) {
	m := sized(t)
	require.Equal(t, 100*time.Millisecond, m.arena.Speed())

	m = update(t, m, runes("]"))
	assert.Equal(t, 80*time.Millisecond, m.arena.Speed())
	assert.Equal(t, "Speed: 80 ms per step", m.status)

	m = update(t, m, runes("["))
	assert.Equal(t, 100*time.Millisecond, m.arena.Speed())

	for range 30 {
		m = update(t, m, runes("]"))
	}
	assert.Equal(t, MinStepInterval, m.arena.Speed())

	for range 40 {
		m = update(t, m, runes("["))
	}
	assert.Equal(t, MaxStepInterval, m.arena.Speed())
}

func TestDuplicateTerminal(t *testing.T) {
	m := sized(t)
	orig, ok := m.desk.Focused()
	require.True(t, ok)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, 2, m.desk.Count())
	dup, ok := m.desk.Focused()
	require.True(t, ok)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, orig.ScriptID, dup.ScriptID)
	assert.Equal(t, 2, m.arena.Len())
}

func TestToggleControls(t *testing.T) {
	m := sized(t)
	require.Contains(t, m.View(), "1 terminal")
	require.Equal(t, 40-ControlBarHeight, m.desktopHeight())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, 40, m.desktopHeight())
	assert.NotContains(t, m.View(), "1 terminal")
	assert.Len(t, strings.Split(m.View(), "\n"), 40)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Contains(t, m.View(), "1 terminal")
}

func TestStatusExpiresOnFrame(t *testing.T) {
	m := sized(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.Equal(t, "Terminals arranged", m.status)

	m = update(t, m, frameMsg(time.Now()))
	assert.NotEmpty(t, m.status)

	m = update(t, m, frameMsg(time.Now().Add(StatusDuration+time.Second)))
	assert.Empty(t, m.status)
}

func TestThemeAndLanguageToggle(t *testing.T) {
	m := sized(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, theme.Next(theme.DefaultName), m.themes.Name())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, i18n.Chinese, m.locale.Locale())
}

func TestMouseDragMovesWindow(t *testing.T) {
	m := sized(t)
	w := m.desk.Windows()[0]
	require.True(t, m.desk.Move(w.ID, desktop.Position{X: 10, Y: 5}))

	m = update(t, m, press(12, 5))
	require.NotNil(t, m.drag)
	assert.Equal(t, w.ID, m.drag.id)

	m = update(t, m, tea.MouseMsg{X: 20, Y: 9, Action: tea.MouseActionMotion})
	moved, ok := m.desk.Get(w.ID)
	require.True(t, ok)
	assert.Equal(t, desktop.Position{X: 18, Y: 9}, moved.Pos)

	m = update(t, m, tea.MouseMsg{X: 20, Y: 9, Action: tea.MouseActionRelease})
	assert.Nil(t, m.drag)
}

func TestMouseCloseGlyph(t *testing.T) {
	m := sized(t)
	w := m.desk.Windows()[0]
	require.True(t, m.desk.Move(w.ID, desktop.Position{X: 0, Y: 0}))
	width := m.desk.Options().WindowWidth

	m = update(t, m, press(width-3, 1))

	assert.Equal(t, 1, m.desk.Count())
	_, ok := m.desk.Get(w.ID)
	assert.False(t, ok, "closed window is replaced")
	assert.Len(t, m.desk.Windows(), 1)
}

func TestControlBarClick(t *testing.T) {
	m := sized(t)

	var target span
	for _, s := range m.controlSpans() {
		if s.action == shortcuts.AddTerminal {
			target = s
		}
	}
	require.NotZero(t, target.end)

	m = update(t, m, press(target.start+1, m.height-1))
	assert.Equal(t, 2, m.desk.Count())
}

func TestHelpOverlay(t *testing.T) {
	m := sized(t)

	m = update(t, m, runes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	// Shortcuts are inert while the overlay is open.
	m = update(t, m, runes("="))
	assert.Equal(t, 1, m.desk.Count())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestEditorOpensAndCancels(t *testing.T) {
	m := sized(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), "Custom Terminal Content")

	m = update(t, m, runes("="))
	assert.Equal(t, 1, m.desk.Count(), "keys go to the editor")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.modal)
}

func TestEditorSavedAppliesToFocused(t *testing.T) {
	m := sized(t)
	c, err := m.custom.Create("Mine", custom.FromEditor("command|$ ls"))
	require.NoError(t, err)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	focused, ok := m.desk.Focused()
	require.True(t, ok)

	m = update(t, m, editorSavedMsg{content: c, apply: true})

	got, ok := m.desk.Get(focused.ID)
	require.True(t, ok)
	assert.Equal(t, c.ID, got.ScriptID)
	_, ok = m.scripts.Get(c.ID)
	assert.True(t, ok)
	assert.Contains(t, m.status, "Mine")
}

func TestTooSmall(t *testing.T) {
	m := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 10, Height: 4})
	assert.Equal(t, "Window too small", m.View())
}

func TestViewFillsScreen(t *testing.T) {
	m := sized(t)
	lines := bytes.Split([]byte(m.View()), []byte("\n"))
	assert.Len(t, lines, 40)
}

func TestProgramAddsTerminals(t *testing.T) {
	tm := teatest.NewTestModel(t, newTestModel(t), teatest.WithInitialTermSize(160, 40))

	tm.Send(runes("="))
	tm.Send(runes("="))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("3 terminals"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	assert.Equal(t, 3, final.desk.Count())
}
