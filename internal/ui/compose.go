package ui

import (
	"strings"

	charmansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// canvas is a frame of styled lines that blocks are stamped onto.
type canvas struct {
	lines []string
	width int
	fill  *surface
}

func newCanvas(width, height int, fill *surface) *canvas {
	row := fill.pad(width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = row
	}
	return &canvas{lines: lines, width: width, fill: fill}
}

// place draws block with its top-left corner at (x, y). Parts outside the
// canvas are clipped.
func (c *canvas) place(block string, x, y int) {
	for i, fgLine := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= len(c.lines) {
			return
		}
		c.lines[row] = c.splice(c.lines[row], fgLine, x)
	}
}

// splice replaces the cells of bgLine starting at x with fgLine.
func (c *canvas) splice(bgLine, fgLine string, x int) string {
	if x < 0 {
		fgLine = charmansi.TruncateLeft(fgLine, -x, "")
		x = 0
	}
	if x >= c.width {
		return bgLine
	}
	fgWidth := charmansi.StringWidth(fgLine)
	if x+fgWidth > c.width {
		fgLine = charmansi.Truncate(fgLine, c.width-x, "")
		fgWidth = c.width - x
	}
	if fgWidth == 0 {
		return bgLine
	}

	var b strings.Builder
	pos := 0
	if x > 0 {
		left := truncate.String(bgLine, uint(x)) //nolint:gosec // x is positive.
		pos = ansi.PrintableRuneWidth(left)
		b.WriteString(left)
		if pos < x {
			b.WriteString(c.fill.pad(x - pos))
			pos = x
		}
	}

	b.WriteString(fgLine)
	pos += fgWidth

	right := charmansi.TruncateLeft(bgLine, pos, "")
	bgWidth := ansi.PrintableRuneWidth(bgLine)
	rightWidth := ansi.PrintableRuneWidth(right)
	if rightWidth < bgWidth-pos {
		b.WriteString(c.fill.pad(bgWidth - rightWidth - pos))
	}
	b.WriteString(right)
	return b.String()
}

func (c *canvas) height() int { return len(c.lines) }

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// centered places block in the middle of the canvas.
func (c *canvas) centered(block string) {
	lines := strings.Split(block, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, charmansi.StringWidth(l))
	}
	x := max(0, (c.width-w)/2)
	y := max(0, (len(c.lines)-len(lines))/2)
	c.place(block, x, y)
}
