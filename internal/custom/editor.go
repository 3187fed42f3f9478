package custom

import (
	"strings"
	"time"

	"github.com/five82/multiterm/internal/script"
)

// EditorLineDelay is the delay every line saved from the editor receives.
// Delays typed by the user are not kept.
const EditorLineDelay = 100 * time.Millisecond

// editorSeparator splits a role prefix from the line text.
const editorSeparator = "|"

// StarterText seeds an empty editor.
const StarterText = "command|user@localhost:~$ \nsuccess|Welcome to my custom terminal!"

// FromEditor converts editor text, one "role|text" entry per row, into script
// lines. Rows without a known role prefix are primary text. Trailing blank
// rows are dropped; blank rows in between are kept as empty lines.
func FromEditor(text string) []script.Line {
	rows := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	lines := make([]script.Line, 0, len(rows))
	for _, row := range rows {
		role := script.RolePrimary
		body := row
		if prefix, rest, ok := strings.Cut(row, editorSeparator); ok {
			candidate := script.ColorRole(strings.ToLower(strings.TrimSpace(prefix)))
			if candidate.Valid() {
				role = candidate
				body = rest
			}
		}
		lines = append(lines, script.Line{Text: body, Role: role, Delay: EditorLineDelay})
	}
	return lines
}

// ToEditor renders lines in the syntax FromEditor reads.
func ToEditor(lines []script.Line) string {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, string(script.ParseColorRole(string(l.Role)))+editorSeparator+l.Text)
	}
	return strings.Join(rows, "\n")
}
