package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/multiterm/internal/shortcuts"
)

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// helpSections groups the registry for the overlay. Shortcuts sharing a
// description are listed once with their keys joined.
func (m Model) helpSections() []helpSection {
	var sections []helpSection
	for _, g := range shortcuts.Groups() {
		var items []helpItem
		index := map[string]int{}
		for _, s := range m.shortcuts.ByGroup(g) {
			desc := m.locale.T(s.Description)
			if i, ok := index[desc]; ok {
				items[i].key += " / " + shortcuts.Format(s)
				continue
			}
			index[desc] = len(items)
			items = append(items, helpItem{key: shortcuts.Format(s), desc: desc})
		}
		if len(items) > 0 {
			sections = append(sections, helpSection{
				title: m.locale.T("shortcuts." + string(g)),
				items: items,
			})
		}
	}
	return sections
}

// helpContent renders the overlay body shown inside the help viewport.
func (m Model) helpContent() string {
	th := m.themes.Current()
	styles := th.Styles()
	panel := lipgloss.NewStyle().Background(lipgloss.Color(th.Panel))

	sections := m.helpSections()
	keyWidth := 0
	for _, s := range sections {
		for _, it := range s.items {
			keyWidth = max(keyWidth, lipgloss.Width(it.key))
		}
	}
	keyWidth += 2

	var b strings.Builder
	b.WriteString(panel.Foreground(lipgloss.Color(th.Text)).Bold(true).Render(m.locale.T("shortcuts.title")))
	b.WriteString("\n")
	b.WriteString(panel.Foreground(lipgloss.Color(th.Muted)).Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.PanelKey.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			keyStyle := panel.Foreground(lipgloss.Color(th.Accent)).Width(keyWidth)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(panel.Foreground(lipgloss.Color(th.Text)).Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// openHelp sizes the help viewport to the screen and fills it.
func (m *Model) openHelp() {
	content := m.helpContent()
	// Modal border and padding take 6 columns and 4 rows, plus a footer row.
	width := min(HelpWidth, max(20, m.width-4)) - 6
	height := max(3, min(lipgloss.Height(content), m.height-6))
	m.helpView = viewport.New(width, height)
	m.helpView.SetContent(content)
	m.showHelp = true
}

// renderHelp renders the shortcut overlay box.
func (m Model) renderHelp() string {
	styles := m.themes.Current().Styles()
	footer := styles.PanelMuted.Render(m.locale.T("shortcuts.footer"))
	body := lipgloss.JoinVertical(lipgloss.Left, m.helpView.View(), footer)
	return styles.Modal.Render(body)
}
