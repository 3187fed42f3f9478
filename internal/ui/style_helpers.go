package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints text and padding onto one background color. lipgloss resets
// between segments, so the gaps between words are painted explicitly.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type surface struct {
	color lipgloss.Color
	bg    lipgloss.Style
	space string
	pads  map[int]string
}

func newSurface(color string) *surface {
	c := lipgloss.Color(color)
	bg := lipgloss.NewStyle().Background(c)
	return &surface{
		color: c,
		bg:    bg,
		space: bg.Render(" "),
		pads:  make(map[int]string),
	}
}

// pad returns n painted blank cells, memoized by width.
func (s *surface) pad(n int) string {
	if n <= 0 {
		return ""
	}
	if p, ok := s.pads[n]; ok {
		return p
	}
	p := s.bg.Render(strings.Repeat(" ", n))
	s.pads[n] = p
	return p
}

// text renders words with style on the surface, painting the spaces between
// them.
func (s *surface) text(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(s.color)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, s.space)
}

// line fits rendered content to exactly width cells.
func (s *surface) line(content string, width int) string {
	return s.bg.Width(width).MaxWidth(width).Render(content)
}
