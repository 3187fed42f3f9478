package screenshot

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
)

// Cell is one terminal cell of a parsed frame. Cont marks the right half of a
// double-width rune.
type Cell struct {
	Rune rune
	FG   color.RGBA
	BG   color.RGBA
	Bold bool
	Cont bool
}

// Grid is a frame split into rows of cells.
type Grid struct {
	Cols  int
	Cells [][]Cell
}

// ParseFrame splits a rendered frame into cells with their resolved colors.
// Cells without a color take fg and bg. Rows are padded to the widest row.
func ParseFrame(frame string, fg, bg color.RGBA) Grid {
	lines := strings.Split(strings.ReplaceAll(frame, "\r\n", "\n"), "\n")
	// Drop one trailing empty row left by a final newline.
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	cols := 0
	for _, line := range lines {
		cols = max(cols, ansi.StringWidth(line))
	}
	if cols == 0 {
		return Grid{}
	}

	buf := cellbuf.NewBuffer(cols, len(lines))
	cellbuf.SetContent(buf, strings.Join(lines, "\n"))

	rows := make([][]Cell, len(lines))
	for y := range rows {
		row := make([]Cell, cols)
		for x := range row {
			row[x] = toCell(buf.Cell(x, y), fg, bg)
		}
		rows[y] = row
	}
	return Grid{Cols: cols, Cells: rows}
}

func toCell(c *cellbuf.Cell, fg, bg color.RGBA) Cell {
	if c == nil {
		return Cell{Rune: ' ', FG: fg, BG: bg}
	}
	out := Cell{
		Rune: visibleRune(c),
		FG:   toRGBA(c.Style.Fg, fg),
		BG:   toRGBA(c.Style.Bg, bg),
		Bold: c.Style.Attrs.Contains(cellbuf.BoldAttr),
		Cont: c.Width == 0,
	}
	if c.Style.Attrs.Contains(cellbuf.ReverseAttr) {
		out.FG, out.BG = out.BG, out.FG
	}
	if c.Style.Attrs.Contains(cellbuf.ConcealAttr) {
		out.FG = out.BG
	}
	return out
}

// visibleRune picks the printed rune of c. Escape sequences the buffer does
// not interpret are stored on the cell ahead of it, so the printed rune is the
// last one.
func visibleRune(c *cellbuf.Cell) rune {
	if c.Width == 0 {
		return ' '
	}
	if c.Rune >= 0x20 || len(c.Comb) == 0 {
		if c.Rune == 0 {
			return ' '
		}
		return c.Rune
	}
	return c.Comb[len(c.Comb)-1]
}

func toRGBA(c color.Color, def color.RGBA) color.RGBA {
	if c == nil {
		return def
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	rgba.A = 0xff
	return rgba
}
