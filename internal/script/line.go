package script

import (
	"encoding/json"
	"strings"
	"time"
)

// ColorRole is a semantic color category resolved through the active theme.
type ColorRole string

const (
	RolePrimary   ColorRole = "primary"
	RoleSecondary ColorRole = "secondary"
	RoleSuccess   ColorRole = "success"
	RoleWarning   ColorRole = "warning"
	RoleError     ColorRole = "error"
	RoleInfo      ColorRole = "info"
	RoleAccent    ColorRole = "accent"
	RoleMuted     ColorRole = "muted"
	RoleCommand   ColorRole = "command"
)

var allRoles = []ColorRole{
	RolePrimary,
	RoleSecondary,
	RoleSuccess,
	RoleWarning,
	RoleError,
	RoleInfo,
	RoleAccent,
	RoleMuted,
	RoleCommand,
}

// Roles returns every color role in display order.
func Roles() []ColorRole {
	out := make([]ColorRole, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseColorRole normalizes s into a known role. Unknown or empty values
// resolve to RolePrimary.
func ParseColorRole(s string) ColorRole {
	candidate := ColorRole(strings.ToLower(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate
	}
	return RolePrimary
}

// Valid reports whether r is one of the known roles.
func (r ColorRole) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Line is one row of a transcript. Delay is the pause before the line starts
// revealing.
type Line struct {
	Text  string
	Role  ColorRole
	Bold  bool
	Delay time.Duration
}

// wireLine is the persisted form shared by JSON storage and YAML scripts.
// Color is the legacy field name for the role.
type wireLine struct {
	Text      string `json:"text" yaml:"text"`
	ColorRole string `json:"colorRole,omitempty" yaml:"colorRole,omitempty"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Bold      bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Delay     int64  `json:"delay,omitempty" yaml:"delay,omitempty"`
}

func (w wireLine) line() Line {
	role := w.ColorRole
	if role == "" {
		role = w.Color
	}
	delay := time.Duration(w.Delay) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	return Line{
		Text:  w.Text,
		Role:  ParseColorRole(role),
		Bold:  w.Bold,
		Delay: delay,
	}
}

func toWire(l Line) wireLine {
	return wireLine{
		Text:      l.Text,
		ColorRole: string(ParseColorRole(string(l.Role))),
		Bold:      l.Bold,
		Delay:     l.Delay.Milliseconds(),
	}
}

// Normalize returns a copy of lines in the form they take once persisted:
// known roles only and whole-millisecond, non-negative delays.
func Normalize(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = toWire(l).line()
	}
	return out
}

// MarshalJSON encodes the line with its delay in integer milliseconds.
func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(l))
}

// UnmarshalJSON accepts both the colorRole and the legacy color field.
func (l *Line) UnmarshalJSON(data []byte) error {
	var w wireLine
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = w.line()
	return nil
}

// VisibleText concatenates the text of every non-empty line.
func VisibleText(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
	}
	return b.String()
}
