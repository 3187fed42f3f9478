// Package asciiart renders text as block letters and colors the result with
// solid colors or horizontal gradients.
package asciiart

import (
	"strings"
	"unicode/utf8"
)

// Render draws one line of text as Height rows of block letters. Letters are
// upper-cased and separated by one column. Runes without a glyph render as '?'.
func Render(text string) []string {
	rows := make([]string, Height)
	first := true
	for _, r := range strings.ToUpper(text) {
		g := glyph(r)
		for i := range rows {
			if !first {
				rows[i] += " "
			}
			rows[i] += g[i]
		}
		first = false
	}
	return rows
}

// RenderLines renders every non-blank input line with a blank row between
// blocks. When every line is blank the result is Height empty rows.
func RenderLines(lines []string) []string {
	var text []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			text = append(text, l)
		}
	}
	if len(text) == 0 {
		return make([]string, Height)
	}
	var out []string
	for i, l := range text {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, Render(l)...)
	}
	return out
}

// Plain joins rendered rows for copying as text.
func Plain(rows []string) string {
	return strings.Join(rows, "\n")
}

// Width returns the widest row in cells.
func Width(rows []string) int {
	w := 0
	for _, r := range rows {
		w = max(w, utf8.RuneCountInString(r))
	}
	return w
}
