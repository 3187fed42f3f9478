package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/five82/multiterm/internal/desktop"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/theme"
	"github.com/five82/multiterm/internal/typewriter"
)

// windowKey identifies one rendering of a window; a cache hit means the
// window looks exactly as it did last frame.
type windowKey struct {
	engine   *typewriter.Engine
	revealed int
	cycles   int
	phase    typewriter.Phase
	focused  bool
	theme    string
	locale   string
	seq      int
}

type windowCache struct {
	key windowKey
	out string
}

// windowHit is what a mouse press on a window landed on.
type windowHit int

const (
	hitNone windowHit = iota
	hitBody
	hitTitle
	hitClose
)

// renderWindow draws one terminal window: a rounded border, a title row with
// the localized title and a close glyph, and the transcript revealed so far,
// scrolled so the newest line stays visible.
func renderWindow(inst desktop.Instance, eng *typewriter.Engine, th theme.Theme, tr func(string, ...i18n.Args) string, focused bool, width, height int) string {
	styles := th.Styles()
	innerW := max(1, width-2)
	innerH := max(1, height-2)

	title := tr("terminal.title", i18n.Args{"number": strconv.Itoa(inst.Seq)})
	title = ansi.Truncate(title, max(0, innerW-4), "…")
	gap := max(0, innerW-lipgloss.Width(title)-3)
	titleRow := styles.TitleBar.Render(" ") +
		styles.TitleText.Render(title) +
		styles.TitleBar.Render(strings.Repeat(" ", gap)) +
		styles.CloseButton.Render(closeGlyph) +
		styles.TitleBar.Render(" ")

	body := transcriptRows(eng, styles, innerW, innerH-1)

	box := styles.Window
	if focused {
		box = styles.WindowFocused
	}
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{titleRow}, body...)...)
	return box.Width(innerW).Height(innerH).MaxHeight(height).Render(content)
}

// transcriptRows wraps the visible lines to width and returns the last rows.
func transcriptRows(eng *typewriter.Engine, styles theme.Styles, width, rows int) []string {
	if eng == nil || rows <= 0 {
		return nil
	}
	visible := eng.Visible()
	var out []string
	for i, line := range visible {
		style := styles.Role(line.Role, line.Bold)
		text := line.Text
		if i == len(visible)-1 && !eng.Done() {
			text += cursorGlyph
		}
		if text == "" {
			out = append(out, "")
			continue
		}
		for _, part := range strings.Split(cellbuf.Wrap(text, width, ""), "\n") {
			out = append(out, style.Render(part))
		}
	}
	if len(out) > rows {
		out = out[len(out)-rows:]
	}
	return out
}

// hitWindow reports what part of a width×height window at pos the cell
// (x, y) falls on.
func hitWindow(pos desktop.Position, width, height, x, y int) windowHit {
	if x < pos.X || x >= pos.X+width || y < pos.Y || y >= pos.Y+height {
		return hitNone
	}
	// Top border and title row both drag the window.
	if y <= pos.Y+1 {
		if y == pos.Y+1 && x == pos.X+width-3 {
			return hitClose
		}
		return hitTitle
	}
	return hitBody
}

func revealedLen(eng *typewriter.Engine) int {
	if eng == nil {
		return 0
	}
	n := 0
	for _, l := range eng.Visible() {
		n += len(l.Text) + 1
	}
	return n
}

// windowKeyFor builds the cache key for inst.
func windowKeyFor(inst desktop.Instance, eng *typewriter.Engine, themeName, locale string, focused bool) windowKey {
	k := windowKey{
		engine:   eng,
		revealed: revealedLen(eng),
		focused:  focused,
		theme:    themeName,
		locale:   locale,
		seq:      inst.Seq,
	}
	if eng != nil {
		k.cycles = eng.Cycles()
		k.phase = eng.Phase()
	}
	return k
}
