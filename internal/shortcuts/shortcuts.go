// Package shortcuts is the registrable table of keyboard shortcuts. Each entry
// pairs a key with modifier flags to an action id and a description key.
package shortcuts

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Action identifies what a shortcut does. The UI maps actions to handlers.
type Action string

const (
	NewTerminal        Action = "newTerminal"
	DuplicateTerminal  Action = "duplicateTerminal"
	AddTerminal        Action = "addTerminal"
	RemoveTerminal     Action = "removeTerminal"
	AddTenTerminals    Action = "addTenTerminals"
	RemoveTenTerminals Action = "removeTenTerminals"
	ArrangeTerminals   Action = "arrangeTerminals"
	ToggleTheme        Action = "toggleTheme"
	ToggleControls     Action = "toggleControls"
	ScreenshotAll      Action = "screenshotAll"
	ScreenshotTerminal Action = "screenshotTerminal"
	ToggleLanguage     Action = "toggleLanguage"
	ShowHelp           Action = "showHelp"
	PauseAnimation     Action = "pauseAnimation"
	SpeedUp            Action = "speedUp"
	SpeedDown          Action = "speedDown"
	OpenEditor         Action = "openEditor"
	RemoveCats         Action = "removeCats"
	FocusNext          Action = "focusNext"
	CloseTerminal      Action = "closeTerminal"
	MoveUp             Action = "moveUp"
	MoveDown           Action = "moveDown"
	MoveLeft           Action = "moveLeft"
	MoveRight          Action = "moveRight"
	Quit               Action = "quit"
)

// Group buckets shortcuts in the help overlay.
type Group string

const (
	GroupTerminal   Group = "terminal"
	GroupLayout     Group = "layout"
	GroupDisplay    Group = "display"
	GroupAnimation  Group = "animation"
	GroupScreenshot Group = "screenshot"
)

// Groups lists help sections in display order.
func Groups() []Group {
	return []Group{GroupTerminal, GroupLayout, GroupDisplay, GroupAnimation, GroupScreenshot}
}

// Shortcut is one key binding. Key is the unshifted key name as a terminal
// reports it ("n", "=", "up", " "). Description is a translation key.
type Shortcut struct {
	Key         string
	Ctrl        bool
	Alt         bool
	Shift       bool
	Meta        bool
	Action      Action
	Description string
	Group       Group
}

var shifted = map[string]string{
	"=": "+", "-": "_", "/": "?", "1": "!", "2": "@", "3": "#", "4": "$",
	"5": "%", "6": "^", "7": "&", "8": "*", "9": "(", "0": ")", ";": ":",
	"'": "\"", ",": "<", ".": ">", "[": "{", "]": "}", "\\": "|", "`": "~",
}

var unshifted = func() map[string]string {
	m := make(map[string]string, len(shifted))
	for k, v := range shifted {
		m[v] = k
	}
	return m
}()

// Code returns the key string a terminal reports for the shortcut, in the
// form bubbletea's KeyMsg.String uses ("ctrl+n", "+", "shift+tab").
func (s Shortcut) Code() string {
	k := strings.ToLower(s.Key)
	shift := s.Shift
	if shift {
		if sym, ok := shifted[k]; ok {
			k, shift = sym, false
		} else if _, ok := unshifted[k]; ok {
			shift = false
		} else if len(k) == 1 {
			k, shift = strings.ToUpper(k), false
		}
	}
	var b strings.Builder
	if s.Ctrl {
		b.WriteString("ctrl+")
	}
	if s.Alt || s.Meta {
		b.WriteString("alt+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(k)
	return b.String()
}

// Parse turns a bubbletea key string back into key and modifier flags.
// Shifted symbols and uppercase letters report Shift with their base key.
func Parse(code string) Shortcut {
	var s Shortcut
	rest := code
	for {
		switch {
		case strings.HasPrefix(rest, "ctrl+") && len(rest) > len("ctrl+"):
			s.Ctrl = true
			rest = rest[len("ctrl+"):]
			continue
		case strings.HasPrefix(rest, "alt+") && len(rest) > len("alt+"):
			s.Alt = true
			rest = rest[len("alt+"):]
			continue
		case strings.HasPrefix(rest, "shift+") && len(rest) > len("shift+"):
			s.Shift = true
			rest = rest[len("shift+"):]
			continue
		}
		break
	}
	if base, ok := unshifted[rest]; ok {
		s.Shift = true
		rest = base
	} else if len(rest) == 1 && rest != strings.ToLower(rest) {
		s.Shift = true
		rest = strings.ToLower(rest)
	}
	s.Key = rest
	return s
}

var keyNames = map[string]string{
	" ":         "Space",
	"space":     "Space",
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
	"enter":     "Enter",
	"esc":       "Esc",
	"backspace": "Backspace",
	"delete":    "Del",
	"tab":       "Tab",
}

// Format renders the shortcut for display, e.g. "Ctrl + N" or "Shift + =".
func Format(s Shortcut) string {
	parts := make([]string, 0, 5)
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Meta {
		parts = append(parts, "Cmd")
	}
	name, ok := keyNames[strings.ToLower(s.Key)]
	if !ok {
		name = strings.ToUpper(s.Key)
	}
	parts = append(parts, name)
	return strings.Join(parts, " + ")
}

// Binding converts the shortcut to a bubbles key binding with its formatted
// help text and the given description.
func (s Shortcut) Binding(desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(s.Code()),
		key.WithHelp(Format(s), desc),
	)
}
