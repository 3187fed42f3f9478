package screenshot

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFrame reports a frame with no visible cells.
var ErrEmptyFrame = errors.New("frame is empty")

// Rasterizer turns a rendered frame into an image.
type Rasterizer interface {
	Rasterize(frame string) (image.Image, error)
}

// BitmapRasterizer draws frames cell by cell with a fixed-size bitmap face.
// Box-drawing runes the face lacks are drawn as lines.
type BitmapRasterizer struct {
	Face       *basicfont.Face
	Foreground color.RGBA
	Background color.RGBA
	// Scale enlarges every pixel; values below 1 mean 1.
	Scale int
}

// NewBitmapRasterizer uses the 7x13 face with the given default colors.
func NewBitmapRasterizer(fg, bg color.RGBA) BitmapRasterizer {
	return BitmapRasterizer{Face: basicfont.Face7x13, Foreground: fg, Background: bg, Scale: 1}
}

// Rasterize implements Rasterizer.
func (r BitmapRasterizer) Rasterize(frame string) (image.Image, error) {
	face := r.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	grid := ParseFrame(frame, r.Foreground, r.Background)
	if grid.Cols == 0 || len(grid.Cells) == 0 {
		return nil, ErrEmptyFrame
	}

	cw, ch := face.Advance, face.Height
	img := image.NewRGBA(image.Rect(0, 0, grid.Cols*cw, len(grid.Cells)*ch))
	d := &font.Drawer{Dst: img, Face: face}

	for y, row := range grid.Cells {
		for x, c := range row {
			if c.Cont {
				continue
			}
			cell := image.Rect(x*cw, y*ch, (x+cellSpan(row, x))*cw, (y+1)*ch)
			draw.Draw(img, cell, image.NewUniform(c.BG), image.Point{}, draw.Src)
			if c.Rune == ' ' {
				continue
			}
			if drawBox(img, cell, c.Rune, c.FG) {
				continue
			}
			if _, ok := face.GlyphAdvance(c.Rune); !ok {
				drawMissing(img, cell, c.FG)
				continue
			}
			d.Src = image.NewUniform(c.FG)
			d.Dot = fixed.P(x*cw, y*ch+face.Ascent)
			d.DrawString(string(c.Rune))
			if c.Bold {
				d.Dot = fixed.P(x*cw+1, y*ch+face.Ascent)
				d.DrawString(string(c.Rune))
			}
		}
	}

	if r.Scale > 1 {
		return scale(img, r.Scale), nil
	}
	return img, nil
}

// cellSpan is how many cells the rune at row[x] covers, limited to the
// continuation cells that follow it.
func cellSpan(row []Cell, x int) int {
	span := 1
	for span < runewidth.RuneWidth(row[x].Rune) && x+span < len(row) && row[x+span].Cont {
		span++
	}
	return span
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x < x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

// drawBox renders light and rounded box-drawing runes and reports whether r
// was one of them.
func drawBox(img *image.RGBA, cell image.Rectangle, r rune, c color.RGBA) bool {
	midX := (cell.Min.X + cell.Max.X) / 2
	midY := (cell.Min.Y + cell.Max.Y) / 2
	left := func() { hline(img, cell.Min.X, midX+1, midY, c) }
	right := func() { hline(img, midX, cell.Max.X, midY, c) }
	up := func() { vline(img, midX, cell.Min.Y, midY+1, c) }
	down := func() { vline(img, midX, midY, cell.Max.Y, c) }

	switch r {
	case '─', '━':
		left()
		right()
	case '│', '┃':
		up()
		down()
	case '╭', '┌', '┏':
		right()
		down()
	case '╮', '┐', '┓':
		left()
		down()
	case '╰', '└', '┗':
		right()
		up()
	case '╯', '┘', '┛':
		left()
		up()
	case '├':
		up()
		down()
		right()
	case '┤':
		up()
		down()
		left()
	case '┬':
		left()
		right()
		down()
	case '┴':
		left()
		right()
		up()
	case '┼':
		left()
		right()
		up()
		down()
	case '█':
		draw.Draw(img, cell, image.NewUniform(c), image.Point{}, draw.Src)
	default:
		return false
	}
	return true
}

func drawMissing(img *image.RGBA, cell image.Rectangle, c color.RGBA) {
	inner := cell.Inset(2)
	if inner.Empty() {
		return
	}
	hline(img, inner.Min.X, inner.Max.X, inner.Min.Y, c)
	hline(img, inner.Min.X, inner.Max.X, inner.Max.Y-1, c)
	vline(img, inner.Min.X, inner.Min.Y, inner.Max.Y, c)
	vline(img, inner.Max.X-1, inner.Min.Y, inner.Max.Y, c)
}

func scale(src *image.RGBA, k int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.SetRGBA(x, y, src.RGBAAt(b.Min.X+x/k, b.Min.Y+y/k))
		}
	}
	return dst
}
