package asciiart

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Preset is a named swatch offered by the typer page.
type Preset struct {
	Name string
	Hex  string
}

var presets = []Preset{
	{"Black", "#000000"},
	{"White", "#ffffff"},
	{"Red", "#ef4444"},
	{"Green", "#22c55e"},
	{"Blue", "#3b82f6"},
	{"Purple", "#a855f7"},
	{"Pink", "#ec4899"},
	{"Yellow", "#eab308"},
	{"Cyan", "#06b6d4"},
	{"Orange", "#f97316"},
	{"Gray Dark", "#374151"},
	{"Gray Light", "#9ca3af"},
}

// Presets returns the swatch palette in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Fill is a solid color or a left-to-right gradient.
type Fill struct {
	Start    string
	End      string
	Gradient bool
}

// Solid returns a single-color fill.
func Solid(hex string) Fill { return Fill{Start: hex, End: hex} }

// Style holds the text and background fills of a rendering.
type Style struct {
	Text       Fill
	Background Fill
}

// DefaultStyle matches the typer page's initial colors.
func DefaultStyle() Style {
	return Style{
		Text:       Fill{Start: "#22c55e", End: "#3b82f6"},
		Background: Fill{Start: "#000000", End: "#1f2937"},
	}
}

// Validate checks that every color parses as hex.
func (s Style) Validate() error {
	for _, h := range []string{s.Text.Start, s.Text.End, s.Background.Start, s.Background.End} {
		if _, err := colorful.Hex(h); err != nil {
			return fmt.Errorf("invalid color %q: %w", h, err)
		}
	}
	return nil
}

// At returns the fill color at column x of a width-wide rendering.
func (f Fill) At(x, width int) colorful.Color {
	start, err := colorful.Hex(f.Start)
	if err != nil {
		start = colorful.Color{}
	}
	if !f.Gradient || width <= 1 {
		return start
	}
	end, err := colorful.Hex(f.End)
	if err != nil {
		return start
	}
	t := float64(x) / float64(width-1)
	return start.BlendLab(end, t).Clamped()
}

// Colorize paints rows with style for the given color profile. Every row is
// padded to the common width so the background forms a rectangle.
func Colorize(rows []string, style Style, profile termenv.Profile) string {
	width := Width(rows)
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		runes := []rune(row)
		for x := 0; x < width; x++ {
			r := ' '
			if x < len(runes) {
				r = runes[x]
			}
			s := profile.String(string(r)).
				Foreground(profile.Color(style.Text.At(x, width).Hex())).
				Background(profile.Color(style.Background.At(x, width).Hex()))
			b.WriteString(s.String())
		}
	}
	return b.String()
}
