// Package theme holds the named color themes and the provider that tracks
// which one is active.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/multiterm/internal/script"
)

// Theme defines chrome colors and the color for every script role.
type Theme struct {
	Name string

	// Desktop and chrome
	Background  string // Desktop backdrop
	Surface     string // Window body
	TitleBar    string // Window title bar
	Border      string // Unfocused window border
	BorderFocus string // Focused window border
	Panel       string // Control panel background

	// Chrome text
	Text   string
	Muted  string
	Accent string
	Danger string

	// Sprite color for the decorative overlay
	Sprite string

	Roles map[script.ColorRole]string
}

// RoleColor resolves role, falling back to the primary role color.
func (t Theme) RoleColor(role script.ColorRole) string {
	if c, ok := t.Roles[role]; ok && c != "" {
		return c
	}
	if c, ok := t.Roles[script.RolePrimary]; ok && c != "" {
		return c
	}
	return t.Text
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Desktop: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Window: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			BorderBackground(lipgloss.Color(t.Background)),

		WindowFocused: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			BorderBackground(lipgloss.Color(t.Background)),

		TitleBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.TitleBar)).
			Foreground(lipgloss.Color(t.Muted)),

		TitleText: lipgloss.NewStyle().
			Background(lipgloss.Color(t.TitleBar)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		CloseButton: lipgloss.NewStyle().
			Background(lipgloss.Color(t.TitleBar)).
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Panel)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		PanelKey: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Panel)).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		PanelMuted: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Panel)).
			Foreground(lipgloss.Color(t.Muted)),

		Modal: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Panel)).
			Foreground(lipgloss.Color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),

		Sprite: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(lipgloss.Color(t.Sprite)),

		theme: t,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Desktop       lipgloss.Style
	Window        lipgloss.Style
	WindowFocused lipgloss.Style
	TitleBar      lipgloss.Style
	TitleText     lipgloss.Style
	CloseButton   lipgloss.Style
	Panel         lipgloss.Style
	PanelKey      lipgloss.Style
	PanelMuted    lipgloss.Style
	Modal         lipgloss.Style
	Sprite        lipgloss.Style

	theme Theme
}

// Role returns the text style for a transcript line on the window surface.
func (s Styles) Role(role script.ColorRole, bold bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.theme.Surface)).
		Foreground(lipgloss.Color(s.theme.RoleColor(role))).
		Bold(bold)
}

// Theme definitions

var themes = map[string]Theme{
	"Dark":           darkTheme(),
	"Light":          lightTheme(),
	"Minimal":        minimalTheme(),
	"Retro Green":    retroGreenTheme(),
	"Dracula":        draculaTheme(),
	"Solarized Dark": solarizedDarkTheme(),
}

var themeOrder = []string{"Dark", "Light", "Minimal", "Retro Green", "Dracula", "Solarized Dark"}

// DefaultName is the theme used when none is configured.
const DefaultName = "Dark"

// Get returns a theme by name, falling back to the default theme.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return darkTheme()
}

// Exists reports whether name is a known theme.
func Exists(name string) bool {
	_, ok := themes[name]
	return ok
}

// Next returns the next theme name in the cycle.
func Next(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Names returns available theme names in cycle order.
func Names() []string {
	return append([]string(nil), themeOrder...)
}

func darkTheme() Theme {
	// GitHub dark palette
	return Theme{
		Name: "Dark",

		Background:  "#0d1117",
		Surface:     "#161b22",
		TitleBar:    "#21262d",
		Border:      "#30363d",
		BorderFocus: "#58a6ff",
		Panel:       "#161b22",

		Text:   "#c9d1d9",
		Muted:  "#8b949e",
		Accent: "#58a6ff",
		Danger: "#f85149",
		Sprite: "#d29922",

		Roles: map[script.ColorRole]string{
			script.RolePrimary:   "#c9d1d9",
			script.RoleSecondary: "#8b949e",
			script.RoleSuccess:   "#3fb950",
			script.RoleWarning:   "#d29922",
			script.RoleError:     "#f85149",
			script.RoleInfo:      "#58a6ff",
			script.RoleAccent:    "#bc8cff",
			script.RoleMuted:     "#6e7681",
			script.RoleCommand:   "#79c0ff",
		},
	}
}

func lightTheme() Theme {
	// GitHub light palette
	return Theme{
		Name: "Light",

		Background:  "#f6f8fa",
		Surface:     "#ffffff",
		TitleBar:    "#eaeef2",
		Border:      "#d0d7de",
		BorderFocus: "#0969da",
		Panel:       "#ffffff",

		Text:   "#24292f",
		Muted:  "#57606a",
		Accent: "#0969da",
		Danger: "#cf222e",
		Sprite: "#bf8700",

		Roles: map[script.ColorRole]string{
			script.RolePrimary:   "#24292f",
			script.RoleSecondary: "#57606a",
			script.RoleSuccess:   "#1a7f37",
			script.RoleWarning:   "#9a6700",
			script.RoleError:     "#cf222e",
			script.RoleInfo:      "#0969da",
			script.RoleAccent:    "#8250df",
			script.RoleMuted:     "#8c959f",
			script.RoleCommand:   "#0550ae",
		},
	}
}

func minimalTheme() Theme {
	// Grayscale, one accent
	return Theme{
		Name: "Minimal",

		Background:  "#111111",
		Surface:     "#1a1a1a",
		TitleBar:    "#1a1a1a",
		Border:      "#333333",
		BorderFocus: "#ffffff",
		Panel:       "#1a1a1a",

		Text:   "#e5e5e5",
		Muted:  "#8a8a8a",
		Accent: "#ffffff",
		Danger: "#e5e5e5",
		Sprite: "#bdbdbd",

		Roles: map[script.ColorRole]string{
			script.RolePrimary:   "#e5e5e5",
			script.RoleSecondary: "#b3b3b3",
			script.RoleSuccess:   "#ffffff",
			script.RoleWarning:   "#d4d4d4",
			script.RoleError:     "#ffffff",
			script.RoleInfo:      "#cccccc",
			script.RoleAccent:    "#ffffff",
			script.RoleMuted:     "#737373",
			script.RoleCommand:   "#ffffff",
		},
	}
}

func retroGreenTheme() Theme {
	// Green phosphor CRT
	return Theme{
		Name: "Retro Green",

		Background:  "#000000",
		Surface:     "#001100",
		TitleBar:    "#002200",
		Border:      "#005500",
		BorderFocus: "#33ff33",
		Panel:       "#001100",

		Text:   "#33ff33",
		Muted:  "#1f9e1f",
		Accent: "#66ff66",
		Danger: "#99ff99",
		Sprite: "#33ff33",

		Roles: map[script.ColorRole]string{
			script.RolePrimary:   "#33ff33",
			script.RoleSecondary: "#28cc28",
			script.RoleSuccess:   "#66ff66",
			script.RoleWarning:   "#ccff33",
			script.RoleError:     "#99ff99",
			script.RoleInfo:      "#00ff99",
			script.RoleAccent:    "#aaffaa",
			script.RoleMuted:     "#1f9e1f",
			script.RoleCommand:   "#b3ffb3",
		},
	}
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com/contribute
	return Theme{
		Name: "Dracula",

		Background:  "#21222c",
		Surface:     "#282a36",
		TitleBar:    "#44475a",
		Border:      "#44475a",
		BorderFocus: "#bd93f9",
		Panel:       "#282a36",

		Text:   "#f8f8f2",
		Muted:  "#6272a4",
		Accent: "#bd93f9",
		Danger: "#ff5555",
		Sprite: "#ffb86c",

		Roles: map[script.ColorRole]string{
			script.RolePrimary:   "#f8f8f2",
			script.RoleSecondary: "#6272a4",
			script.RoleSuccess:   "#50fa7b",
			script.RoleWarning:   "#f1fa8c",
			script.RoleError:     "#ff5555",
			script.RoleInfo:      "#8be9fd",
			script.RoleAccent:    "#ff79c6",
			script.RoleMuted:     "#6272a4",
			script.RoleCommand:   "#bd93f9",
		},
	}
}

func solarizedDarkTheme() Theme {
	// Solarized palette: https://ethanschoonover.com/solarized/
	return Theme{
		Name: "Solarized Dark",

		Background:  "#002b36", // base03
		Surface:     "#073642", // base02
		TitleBar:    "#073642", // base02
		Border:      "#586e75", // base01
		BorderFocus: "#268bd2", // blue
		Panel:       "#073642", // base02

		Text:   "#93a1a1", // base1
		Muted:  "#657b83", // base00
		Accent: "#268bd2", // blue
		Danger: "#dc322f", // red
		Sprite: "#b58900", // yellow

		Roles: map[script.ColorRole]string{
			script.RolePrimary:   "#93a1a1",
			script.RoleSecondary: "#839496",
			script.RoleSuccess:   "#859900",
			script.RoleWarning:   "#b58900",
			script.RoleError:     "#dc322f",
			script.RoleInfo:      "#2aa198",
			script.RoleAccent:    "#d33682",
			script.RoleMuted:     "#586e75",
			script.RoleCommand:   "#268bd2",
		},
	}
}
