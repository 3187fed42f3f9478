package asciiart

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphsAreRectangular(t *testing.T) {
	for r, g := range glyphs {
		w := len([]rune(g[0]))
		for i, row := range g {
			assert.Equalf(t, w, len([]rune(row)), "glyph %q row %d", r, i)
			assert.NotContainsf(t, row, "#", "glyph %q row %d", r, i)
		}
	}
}

func TestRenderUppercases(t *testing.T) {
	assert.Equal(t, Render("ok"), Render("OK"))

	rows := Render("HI")
	require.Len(t, rows, Height)
	assert.Equal(t, "█   █ █████", rows[0])
	assert.Equal(t, "█████   █  ", rows[2])
}

func TestRenderUnknownRune(t *testing.T) {
	assert.Equal(t, Render("?"), Render("@"))
	assert.False(t, Supported('@'))
	assert.True(t, Supported('q'))
}

func TestRenderLines(t *testing.T) {
	rows := RenderLines([]string{"a", "  ", "b"})
	require.Len(t, rows, 2*Height+1)
	assert.Equal(t, "", rows[Height])
	assert.Equal(t, Render("A"), rows[:Height])
	assert.Equal(t, Render("B"), rows[Height+1:])
}

func TestRenderLinesAllBlank(t *testing.T) {
	rows := RenderLines([]string{"", " "})
	assert.Equal(t, make([]string, Height), rows)
	assert.Equal(t, 0, Width(rows))
}

func TestPresets(t *testing.T) {
	p := Presets()
	require.Len(t, p, 12)
	assert.Equal(t, Preset{"Black", "#000000"}, p[0])
	assert.Equal(t, Preset{"Gray Light", "#9ca3af"}, p[11])

	p[0].Hex = "#123456"
	assert.Equal(t, "#000000", Presets()[0].Hex)
}

func TestFillAt(t *testing.T) {
	f := Fill{Start: "#000000", End: "#ffffff", Gradient: true}
	assert.Equal(t, "#000000", f.At(0, 10).Hex())
	assert.Equal(t, "#ffffff", f.At(9, 10).Hex())

	f.Gradient = false
	assert.Equal(t, "#000000", f.At(9, 10).Hex())
	assert.Equal(t, "#22c55e", Solid("#22c55e").At(3, 10).Hex())
}

func TestStyleValidate(t *testing.T) {
	assert.NoError(t, DefaultStyle().Validate())
	s := DefaultStyle()
	s.Text.End = "green"
	assert.Error(t, s.Validate())
}

func TestColorizePadsRows(t *testing.T) {
	out := Colorize([]string{"ab", "c"}, DefaultStyle(), termenv.Ascii)
	assert.Equal(t, "ab\nc ", out)
}

func TestColorizeTrueColor(t *testing.T) {
	out := Colorize([]string{"x"}, Style{Text: Solid("#ff0000"), Background: Solid("#000000")}, termenv.TrueColor)
	assert.True(t, strings.Contains(out, "38;2;255;0;0"), out)
	assert.True(t, strings.Contains(out, "48;2;0;0;0"), out)
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"), out)
}
