package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/shortcuts"
)

// keyMap adapts the shortcut registry to bubbles key bindings so help views
// show the same keys the registry dispatches.
type keyMap struct {
	registry *shortcuts.Registry
	locale   *i18n.Provider

	// Modal keys are not part of the registry.
	Cancel  key.Binding
	Confirm key.Binding
}

func newKeyMap(registry *shortcuts.Registry, locale *i18n.Provider) keyMap {
	return keyMap{
		registry: registry,
		locale:   locale,
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
	}
}

// binding merges every shortcut for action into one binding.
func (k keyMap) binding(action shortcuts.Action) key.Binding {
	items := k.registry.ByAction(action)
	if len(items) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	codes := make([]string, 0, len(items))
	labels := make([]string, 0, len(items))
	for _, s := range items {
		codes = append(codes, s.Code())
		labels = append(labels, shortcuts.Format(s))
	}
	return key.NewBinding(
		key.WithKeys(codes...),
		key.WithHelp(strings.Join(labels, " / "), k.locale.T(items[0].Description)),
	)
}

// ShortHelp returns key bindings for the control bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.binding(shortcuts.ShowHelp),
		k.binding(shortcuts.NewTerminal),
		k.binding(shortcuts.PauseAnimation),
		k.binding(shortcuts.OpenEditor),
		k.binding(shortcuts.Quit),
	}
}

// FullHelp returns one column per shortcut group.
func (k keyMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, g := range shortcuts.Groups() {
		var col []key.Binding
		seen := map[shortcuts.Action]bool{}
		for _, s := range k.registry.ByGroup(g) {
			if seen[s.Action] {
				continue
			}
			seen[s.Action] = true
			col = append(col, k.binding(s.Action))
		}
		if len(col) > 0 {
			cols = append(cols, col)
		}
	}
	return cols
}
