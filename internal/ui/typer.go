package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/multiterm/internal/asciiart"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/screenshot"
	"github.com/five82/multiterm/internal/theme"
)

// TyperPrefix names ASCII art images saved to disk.
const TyperPrefix = "ascii-art"

// TyperOptions configures the ASCII typer page.
type TyperOptions struct {
	Context context.Context
	Themes  *theme.Provider
	Locale  *i18n.Provider
	Shooter *screenshot.Shooter
	Logger  *slog.Logger
	// Lines seeds the inputs; empty starts with one sample line.
	Lines []string
	// CopyText writes plain text to the clipboard; nil uses the system clipboard.
	CopyText func(string) error
}

// TyperModel is the ASCII art typer page: editable text lines rendered as
// block letters with preset colors and gradients.
type TyperModel struct {
	ctx      context.Context
	themes   *theme.Provider
	locale   *i18n.Provider
	shooter  *screenshot.Shooter
	logger   *slog.Logger
	copyText func(string) error

	inputs []textinput.Model
	focus  int
	style  asciiart.Style

	textIdx, textEndIdx int
	bgIdx, bgEndIdx     int

	width, height int
	status        string
	statusUntil   time.Time
}

type typerStatusMsg struct {
	text string
}

type typerClearMsg time.Time

// NewTyper builds the typer page.
func NewTyper(opts TyperOptions) TyperModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewProvider(theme.DefaultName)
	}
	locale := opts.Locale
	if locale == nil {
		locale = i18n.NewProvider(i18n.MustLoadCatalog(), i18n.English)
	}

	m := TyperModel{
		ctx:      ctx,
		themes:   themes,
		locale:   locale,
		shooter:  opts.Shooter,
		logger:   logger,
		copyText: copyText,
		style:    asciiart.DefaultStyle(),
		// Preset cursors start at the DefaultStyle colors.
		textIdx:    3,
		textEndIdx: 4,
		bgIdx:      0,
		bgEndIdx:   10,
	}

	lines := opts.Lines
	if len(lines) == 0 {
		lines = []string{"Gradient Text"}
	}
	for _, l := range lines {
		m.inputs = append(m.inputs, m.newInput(l))
	}
	m.focusInput(0)
	return m
}

func (m TyperModel) newInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = m.locale.T("asciiTyper.placeholder")
	ti.CharLimit = 40
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

func (m *TyperModel) focusInput(i int) {
	m.focus = max(0, min(i, len(m.inputs)-1))
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Lines returns the current input values.
func (m TyperModel) Lines() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

// Style returns the current color style.
func (m TyperModel) Style() asciiart.Style { return m.style }

// Init implements tea.Model.
func (m TyperModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m TyperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case typerStatusMsg:
		m.status = msg.text
		m.statusUntil = time.Now().Add(StatusDuration)
		return m, tea.Tick(StatusDuration, func(t time.Time) tea.Msg { return typerClearMsg(t) })

	case typerClearMsg:
		if !time.Time(msg).Before(m.statusUntil) {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *TyperModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	presets := asciiart.Presets()
	next := func(i int) int { return (i + 1) % len(presets) }

	switch msg.String() {
	case "esc", "ctrl+c":
		return tea.Quit, true
	case "enter":
		at := m.focus + 1
		m.inputs = append(m.inputs[:at], append([]textinput.Model{m.newInput("")}, m.inputs[at:]...)...)
		m.focusInput(at)
	case "ctrl+x":
		if len(m.inputs) > 1 {
			m.inputs = append(m.inputs[:m.focus], m.inputs[m.focus+1:]...)
			m.focusInput(m.focus)
			return statusCmd(m.locale.T("asciiTyper.lineRemoved")), true
		}
	case "up":
		m.focusInput(m.focus - 1)
	case "down":
		m.focusInput(m.focus + 1)
	case "tab":
		m.textIdx = next(m.textIdx)
		m.style.Text.Start = presets[m.textIdx].Hex
	case "shift+tab":
		m.bgIdx = next(m.bgIdx)
		m.style.Background.Start = presets[m.bgIdx].Hex
	case "ctrl+e":
		m.textEndIdx = next(m.textEndIdx)
		m.style.Text.End = presets[m.textEndIdx].Hex
		m.style.Text.Gradient = true
	case "ctrl+f":
		m.bgEndIdx = next(m.bgEndIdx)
		m.style.Background.End = presets[m.bgEndIdx].Hex
		m.style.Background.Gradient = true
	case "ctrl+g":
		m.style.Text.Gradient = !m.style.Text.Gradient
	case "ctrl+b":
		m.style.Background.Gradient = !m.style.Background.Gradient
	case "ctrl+y":
		return m.copyTextCmd(), true
	case "ctrl+s":
		return m.copyImageCmd(), true
	default:
		return nil, false
	}
	return nil, true
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return typerStatusMsg{text: text} }
}

func (m TyperModel) rows() []string {
	return asciiart.RenderLines(m.Lines())
}

func (m TyperModel) copyTextCmd() tea.Cmd {
	text := asciiart.Plain(m.rows())
	copyText := m.copyText
	locale := m.locale
	logger := m.logger
	return func() tea.Msg {
		if err := copyText(text); err != nil {
			logger.Warn("system clipboard unavailable, using OSC 52", slog.Any("err", err))
			termenv.Copy(text)
		}
		return typerStatusMsg{text: locale.T("asciiTyper.copied")}
	}
}

func (m TyperModel) copyImageCmd() tea.Cmd {
	if m.shooter == nil {
		return nil
	}
	frame := asciiart.Colorize(m.rows(), m.style, termenv.TrueColor)
	shooter, ctx, locale := m.shooter, m.ctx, m.locale
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ScreenshotTimeout)
		defer cancel()
		res := shooter.Take(ctx, frame, TyperPrefix)
		switch {
		case res.Copied:
			return typerStatusMsg{text: locale.T("asciiTyper.copied")}
		case res.Success:
			return typerStatusMsg{text: locale.T("asciiTyper.imageSaved", i18n.Args{"path": res.Path})}
		default:
			return typerStatusMsg{text: screenshotFailure(locale, res.Err)}
		}
	}
}

// View implements tea.Model.
func (m TyperModel) View() string {
	th := m.themes.Current()
	styles := th.Styles()
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(m.style.Text.Start)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Muted))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))

	var b strings.Builder
	b.WriteString(title.Render(m.locale.T("asciiTyper.title")))
	b.WriteString("\n\n")

	preview := asciiart.Colorize(m.rows(), m.style, lipgloss.ColorProfile())
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.style.Text.Start))
	if m.width > 0 {
		border = border.MaxWidth(m.width)
	}
	b.WriteString(border.Render(preview))
	b.WriteString("\n\n")

	b.WriteString(accent.Render(m.locale.T("asciiTyper.input")))
	b.WriteString("\n")
	for i, in := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = accent.Render("› ")
		}
		b.WriteString(marker + in.View() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.colorLine(m.locale.T("asciiTyper.textColor"), m.style.Text))
	b.WriteString("\n")
	b.WriteString(m.colorLine(m.locale.T("asciiTyper.backgroundColor"), m.style.Background))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(styles.PanelKey.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(m.locale.T("asciiTyper.help")))
	return b.String()
}

func (m TyperModel) colorLine(label string, f asciiart.Fill) string {
	swatch := func(hex string) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	}
	line := label + ": " + swatch(f.Start) + " " + presetName(f.Start)
	if f.Gradient {
		line += " → " + swatch(f.End) + " " + presetName(f.End) + " (" + m.locale.T("asciiTyper.gradient") + ")"
	}
	return line
}

// presetName labels hex with its preset name when it has one.
func presetName(hex string) string {
	for _, p := range asciiart.Presets() {
		if strings.EqualFold(p.Hex, hex) {
			return p.Name
		}
	}
	return hex
}

// RunTyper starts the typer page.
func RunTyper(opts TyperOptions) error {
	p := tea.NewProgram(NewTyper(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
