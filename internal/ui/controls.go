package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/shortcuts"
)

// controlButton is a clickable label in the control bar.
type controlButton struct {
	label  string
	action shortcuts.Action
}

// span is the column range [start, end) a button occupies.
type span struct {
	start, end int
	action     shortcuts.Action
}

func (m Model) controlButtons() []controlButton {
	return []controlButton{
		{"−10", shortcuts.RemoveTenTerminals},
		{"−1", shortcuts.RemoveTerminal},
		{"+1", shortcuts.AddTerminal},
		{"+10", shortcuts.AddTenTerminals},
		{m.locale.T("controls.arrange"), shortcuts.ArrangeTerminals},
		{m.themes.Name(), shortcuts.ToggleTheme},
		{i18n.DisplayName(m.locale.Locale()), shortcuts.ToggleLanguage},
		{m.locale.T("controls.screenshotAll"), shortcuts.ScreenshotAll},
		{m.locale.T("controls.removeCats"), shortcuts.RemoveCats},
		{m.locale.T("controls.customContent"), shortcuts.OpenEditor},
		{"?", shortcuts.ShowHelp},
	}
}

// controlSpans lays the buttons out left to right with one space between.
func (m Model) controlSpans() []span {
	var spans []span
	x := 1
	for _, b := range m.controlButtons() {
		w := lipgloss.Width(b.label) + 2
		spans = append(spans, span{start: x, end: x + w, action: b.action})
		x += w + 1
	}
	return spans
}

// hitControl returns the action of the button under column x.
func (m Model) hitControl(x int) (shortcuts.Action, bool) {
	for _, s := range m.controlSpans() {
		if x >= s.start && x < s.end {
			return s.action, true
		}
	}
	return "", false
}

// renderControls draws the bottom bar: buttons, counts, and either the
// current status message or the short key help.
func (m Model) renderControls() string {
	th := m.themes.Current()
	styles := th.Styles()
	bg := newSurface(th.Panel)
	button := lipgloss.NewStyle().
		Background(lipgloss.Color(th.TitleBar)).
		Foreground(lipgloss.Color(th.Text))

	parts := []string{bg.pad(1)}
	for i, b := range m.controlButtons() {
		if i > 0 {
			parts = append(parts, bg.pad(1))
		}
		parts = append(parts, button.Render(" "+b.label+" "))
	}
	left := strings.Join(parts, "")

	info := []string{m.locale.T("terminal.count", i18n.Args{"count": m.desk.Count()})}
	if shown := m.desk.Rendered(); shown < m.desk.Count() {
		info = append(info, m.locale.T("terminal.rendered", i18n.Args{"shown": shown, "count": m.desk.Count()}))
	}
	info = append(info, m.locale.T("cats.count", i18n.Args{"count": m.desk.Overlay.Len()}))
	if !m.arena.Enabled() {
		info = append(info, m.locale.T("app.paused"))
	}
	right := bg.text(strings.Join(info, " · "), styles.PanelMuted)

	if m.status != "" {
		right = bg.text(m.status, styles.PanelKey) + bg.pad(2) + right
	} else {
		m.help.Styles = helpStyles(th)
		m.help.Width = max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right)-4)
		if hv := m.help.ShortHelpView(m.keys.ShortHelp()); hv != "" && m.help.Width > 10 {
			right = bg.line(hv, lipgloss.Width(hv)) + bg.pad(2) + right
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	line := left + bg.pad(gap) + right + bg.pad(1)
	if lipgloss.Width(line) > m.width {
		line = ansi.Truncate(line, m.width, "")
	}
	return bg.line(line, m.width)
}
