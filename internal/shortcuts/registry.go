package shortcuts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction reports a rebind of an action the registry does not hold.
var ErrUnknownAction = errors.New("unknown shortcut action")

// Registry holds shortcuts in registration order. The first match wins.
type Registry struct {
	items []Shortcut
}

// NewRegistry returns a registry holding items.
func NewRegistry(items ...Shortcut) *Registry {
	r := &Registry{}
	for _, s := range items {
		r.Register(s)
	}
	return r
}

// Register adds s. A later registration of the same key code replaces the
// earlier one.
func (r *Registry) Register(s Shortcut) {
	code := s.Code()
	for i, existing := range r.items {
		if existing.Code() == code {
			r.items[i] = s
			return
		}
	}
	r.items = append(r.items, s)
}

// Unregister removes every shortcut bound to action.
func (r *Registry) Unregister(action Action) {
	kept := r.items[:0]
	for _, s := range r.items {
		if s.Action != action {
			kept = append(kept, s)
		}
	}
	r.items = kept
}

// Rebind replaces every key bound to action with code, a bubbletea key string
// such as "ctrl+y" or "space". The description and group carry over.
func (r *Registry) Rebind(action Action, code string) error {
	existing := r.ByAction(action)
	if len(existing) == 0 {
		return fmt.Errorf("rebind %q: %w", action, ErrUnknownAction)
	}
	code = strings.TrimSpace(code)
	switch code {
	case "":
		return fmt.Errorf("rebind %q: key is empty", action)
	case "space":
		code = " "
	}
	s := Parse(code)
	s.Action = action
	s.Description = existing[0].Description
	s.Group = existing[0].Group
	r.Unregister(action)
	r.Register(s)
	return nil
}

// Dispatch finds the shortcut for a bubbletea key string. Nothing matches
// while a text input has focus.
func (r *Registry) Dispatch(code string, inputFocused bool) (Shortcut, bool) {
	if inputFocused {
		return Shortcut{}, false
	}
	for _, s := range r.items {
		if s.Code() == code {
			return s, true
		}
	}
	return Shortcut{}, false
}

// Shortcuts returns a copy of the table.
func (r *Registry) Shortcuts() []Shortcut {
	return append([]Shortcut(nil), r.items...)
}

// ByAction returns every shortcut bound to action.
func (r *Registry) ByAction(action Action) []Shortcut {
	var out []Shortcut
	for _, s := range r.items {
		if s.Action == action {
			out = append(out, s)
		}
	}
	return out
}

// ByGroup returns the shortcuts of g in registration order.
func (r *Registry) ByGroup(g Group) []Shortcut {
	var out []Shortcut
	for _, s := range r.items {
		if s.Group == g {
			out = append(out, s)
		}
	}
	return out
}

func desc(a Action) string { return "shortcuts." + string(a) }

// Defaults is the standard table. Ctrl+L switches language because terminals
// cannot tell Ctrl+I from Tab. The arrow keys move windows, so brackets change
// the typing speed.
func Defaults() []Shortcut {
	return []Shortcut{
		{Key: "n", Ctrl: true, Action: NewTerminal, Description: desc(NewTerminal), Group: GroupTerminal},
		{Key: "d", Ctrl: true, Action: DuplicateTerminal, Description: desc(DuplicateTerminal), Group: GroupTerminal},
		{Key: "=", Action: AddTerminal, Description: desc(AddTerminal), Group: GroupTerminal},
		{Key: "-", Action: RemoveTerminal, Description: desc(RemoveTerminal), Group: GroupTerminal},
		{Key: "=", Shift: true, Action: AddTenTerminals, Description: desc(AddTenTerminals), Group: GroupTerminal},
		{Key: "-", Shift: true, Action: RemoveTenTerminals, Description: desc(RemoveTenTerminals), Group: GroupTerminal},
		{Key: "w", Ctrl: true, Action: CloseTerminal, Description: desc(CloseTerminal), Group: GroupTerminal},
		{Key: "e", Ctrl: true, Action: OpenEditor, Description: desc(OpenEditor), Group: GroupTerminal},
		{Key: "g", Ctrl: true, Action: ArrangeTerminals, Description: desc(ArrangeTerminals), Group: GroupLayout},
		{Key: "tab", Action: FocusNext, Description: desc(FocusNext), Group: GroupLayout},
		{Key: "up", Action: MoveUp, Description: desc("moveTerminal"), Group: GroupLayout},
		{Key: "down", Action: MoveDown, Description: desc("moveTerminal"), Group: GroupLayout},
		{Key: "left", Action: MoveLeft, Description: desc("moveTerminal"), Group: GroupLayout},
		{Key: "right", Action: MoveRight, Description: desc("moveTerminal"), Group: GroupLayout},
		{Key: "t", Ctrl: true, Action: ToggleTheme, Description: desc(ToggleTheme), Group: GroupDisplay},
		{Key: "h", Ctrl: true, Action: ToggleControls, Description: desc(ToggleControls), Group: GroupDisplay},
		{Key: "l", Ctrl: true, Action: ToggleLanguage, Description: desc(ToggleLanguage), Group: GroupDisplay},
		{Key: "/", Shift: true, Action: ShowHelp, Description: desc(ShowHelp), Group: GroupDisplay},
		{Key: "x", Ctrl: true, Action: RemoveCats, Description: desc(RemoveCats), Group: GroupDisplay},
		{Key: "q", Action: Quit, Description: desc(Quit), Group: GroupDisplay},
		{Key: "c", Ctrl: true, Action: Quit, Description: desc(Quit), Group: GroupDisplay},
		{Key: " ", Action: PauseAnimation, Description: desc(PauseAnimation), Group: GroupAnimation},
		{Key: "]", Action: SpeedUp, Description: desc(SpeedUp), Group: GroupAnimation},
		{Key: "[", Action: SpeedDown, Description: desc(SpeedDown), Group: GroupAnimation},
		{Key: "s", Ctrl: true, Action: ScreenshotAll, Description: desc(ScreenshotAll), Group: GroupScreenshot},
		{Key: "s", Alt: true, Action: ScreenshotTerminal, Description: desc(ScreenshotTerminal), Group: GroupScreenshot},
	}
}

// Default returns a registry holding Defaults.
func Default() *Registry { return NewRegistry(Defaults()...) }
