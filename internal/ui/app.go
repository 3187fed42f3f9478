package ui

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/multiterm/internal/config"
	"github.com/five82/multiterm/internal/custom"
	"github.com/five82/multiterm/internal/desktop"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/screenshot"
	"github.com/five82/multiterm/internal/script"
	"github.com/five82/multiterm/internal/shortcuts"
	"github.com/five82/multiterm/internal/state"
	"github.com/five82/multiterm/internal/theme"
	"github.com/five82/multiterm/internal/typewriter"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    *config.Config
	Scripts   *script.Registry
	Custom    *custom.Store
	Themes    *theme.Provider
	Locale    *i18n.Provider
	Shortcuts *shortcuts.Registry
	Shooter   *screenshot.Shooter
	Logger    *slog.Logger
	Rand      *rand.Rand

	// Changes signals that stored custom content was edited elsewhere.
	Changes <-chan struct{}
}

// dragState tracks a title bar drag; the offset keeps the grab point under
// the pointer.
type dragState struct {
	id         string
	offX, offY int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	cfg       config.Config
	scripts   *script.Registry
	custom    *custom.Store
	themes    *theme.Provider
	locale    *i18n.Provider
	shortcuts *shortcuts.Registry
	shooter   *screenshot.Shooter
	logger    *slog.Logger
	changes   <-chan struct{}

	// Desktop state
	desk    *desktop.Desktop
	arena   *typewriter.Arena
	windows map[string]windowCache
	drag    *dragState

	// UI state
	width       int
	height      int
	ready       bool
	noControls  bool
	status      string
	statusUntil time.Time
	lastTick    time.Time

	// Help overlay
	keys     keyMap
	help     help.Model
	helpView viewport.Model
	showHelp bool

	// Active dialog, if any
	modal Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scripts := opts.Scripts
	if scripts == nil {
		scripts = script.MustRegistry()
	}

	store := opts.Custom
	if store == nil {
		store = custom.NewStore(state.NewMemory(), logger)
	}

	themes := opts.Themes
	if themes == nil {
		themes = theme.NewProvider(theme.DefaultName)
	}

	locale := opts.Locale
	if locale == nil {
		locale = i18n.NewProvider(i18n.MustLoadCatalog(), i18n.English)
	}

	registry := opts.Shortcuts
	if registry == nil {
		registry = shortcuts.Default()
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 2)) //nolint:gosec // Layout randomness only.
	}

	desk := desktop.New(desktop.Options{
		MaxTerminals:     cfg.MaxTerminals,
		RenderCap:        cfg.RenderCap,
		ReducedRenderCap: cfg.ReducedRenderCap,
		ReducedThreshold: cfg.ReducedRenderThreshold,
		WindowWidth:      cfg.WindowWidth,
		WindowHeight:     cfg.WindowHeight,
		Order:            desktop.ParseOrder(cfg.ScriptOrder),
	}, scripts, rng)
	desk.SetCount(cfg.InitialTerminals)

	arena := typewriter.NewArena(typewriter.Options{
		Speed:     cfg.Speed,
		Loop:      cfg.Loop,
		LoopDelay: cfg.LoopDelay,
		Enabled:   true,
		TokenMode: cfg.TokenMode,
	}, rng)

	m := Model{
		ctx:       ctx,
		cfg:       cfg,
		scripts:   scripts,
		custom:    store,
		themes:    themes,
		locale:    locale,
		shortcuts: registry,
		shooter:   opts.Shooter,
		logger:    logger,
		changes:   opts.Changes,
		desk:      desk,
		arena:     arena,
		windows:   make(map[string]windowCache),
		keys:      newKeyMap(registry, locale),
		help:      help.New(),
	}
	m.syncEngines()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(m.cfg.FrameInterval()),
		waitForChange(m.changes),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.desk.SetViewport(m.width, m.desktopHeight())
		m.help.Width = m.width
		if m.showHelp {
			m.openHelp()
		}
		return m, nil

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case screenshotMsg:
		m.setStatus(m.screenshotStatus(msg.result))
		return m, nil

	case editorSavedMsg:
		return m.handleEditorSaved(msg)

	case customChangedMsg:
		m.reloadCustom()
		return m, waitForChange(m.changes)
	}

	// Dialogs receive their own cursor blinks and field messages.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.width < MinWidth || m.height < MinHeight {
		return m.locale.T("app.tooSmall")
	}

	c := m.renderDesktop()
	styles := m.themes.Current().Styles()
	switch {
	case m.modal != nil:
		c.centered(m.modal.View(styles, m.width, c.height()))
	case m.showHelp:
		c.centered(m.renderHelp())
	}
	if m.noControls {
		return c.String()
	}
	return c.String() + "\n" + m.renderControls()
}

func (m Model) desktopHeight() int {
	if m.noControls {
		return max(1, m.height)
	}
	return max(1, m.height-ControlBarHeight)
}

// handleKey routes input to the open dialog, the help overlay, or the
// shortcut registry, in that order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m.updateModal(msg)
	}

	if m.showHelp {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.binding(shortcuts.ShowHelp)):
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	s, ok := m.shortcuts.Dispatch(msg.String(), false)
	if !ok {
		return m, nil
	}
	return m.runAction(s.Action)
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, done := m.modal.Update(msg, m.keys)
	if done {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

// runAction performs a registry action. Keyboard and control bar clicks both
// end up here.
func (m Model) runAction(action shortcuts.Action) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch action {
	case shortcuts.NewTerminal:
		inst := m.desk.Spawn("")
		m.desk.Focus(inst.ID)
	case shortcuts.DuplicateTerminal:
		if w, ok := m.desk.Focused(); ok {
			inst := m.desk.Spawn(w.ScriptID)
			m.desk.Focus(inst.ID)
		}
	case shortcuts.AddTerminal:
		m.desk.AddCount(1)
	case shortcuts.RemoveTerminal:
		m.desk.AddCount(-1)
	case shortcuts.AddTenTerminals:
		m.desk.AddCount(10)
	case shortcuts.RemoveTenTerminals:
		m.desk.AddCount(-10)
	case shortcuts.CloseTerminal:
		if w, ok := m.desk.Focused(); ok {
			m.desk.Close(w.ID)
		}
	case shortcuts.ArrangeTerminals:
		m.desk.Arrange()
		m.setStatus(m.locale.T("app.arranged"))
	case shortcuts.FocusNext:
		m.desk.FocusNext()
	case shortcuts.MoveUp:
		m.nudge(0, -1)
	case shortcuts.MoveDown:
		m.nudge(0, 1)
	case shortcuts.MoveLeft:
		m.nudge(-2, 0)
	case shortcuts.MoveRight:
		m.nudge(2, 0)
	case shortcuts.ToggleTheme:
		th := m.themes.Next()
		m.setStatus(m.locale.T("app.themeChanged", i18n.Args{"theme": th.Name}))
	case shortcuts.ToggleControls:
		m.noControls = !m.noControls
		m.desk.SetViewport(m.width, m.desktopHeight())
	case shortcuts.ToggleLanguage:
		loc := m.locale.Toggle()
		m.setStatus(m.locale.T("app.languageChanged", i18n.Args{"language": i18n.DisplayName(loc)}))
	case shortcuts.ShowHelp:
		m.openHelp()
	case shortcuts.PauseAnimation:
		enabled := !m.arena.Enabled()
		m.arena.SetEnabled(enabled)
		if enabled {
			m.setStatus(m.locale.T("app.resumed"))
		} else {
			m.setStatus(m.locale.T("app.paused"))
		}
	case shortcuts.SpeedUp:
		m.changeSpeed(-1)
	case shortcuts.SpeedDown:
		m.changeSpeed(1)
	case shortcuts.OpenEditor:
		cmd = m.openEditor()
	case shortcuts.RemoveCats:
		m.desk.RemoveCats()
	case shortcuts.ScreenshotAll:
		cmd = m.screenshotCmd(m.renderDesktop().String(), screenshot.DesktopPrefix)
	case shortcuts.ScreenshotTerminal:
		if frame, ok := m.terminalFrame(); ok {
			cmd = m.screenshotCmd(frame, screenshot.TerminalPrefix)
		}
	case shortcuts.Quit:
		return m, tea.Quit
	}

	m.syncEngines()
	return m, cmd
}

// changeSpeed scales the step interval of every engine by one notch, slower
// for positive dir.
func (m *Model) changeSpeed(dir int) {
	d := m.arena.Speed()
	if dir > 0 {
		d = d * 5 / 4
	} else {
		d = d * 4 / 5
	}
	d = min(max(d, MinStepInterval), MaxStepInterval)
	m.arena.SetSpeed(d)
	m.setStatus(m.locale.T("app.speed", i18n.Args{"ms": d.Milliseconds()}))
}

// nudge moves the focused window by (dx, dy) cells.
func (m Model) nudge(dx, dy int) {
	w, ok := m.desk.Focused()
	if !ok {
		return
	}
	m.desk.Move(w.ID, desktop.Position{X: w.Pos.X + dx, Y: w.Pos.Y + dy})
}

// handleMouse implements title bar drags, the close glyph, click to focus,
// and control bar buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y >= m.desktopHeight() {
			if action, ok := m.hitControl(msg.X); ok {
				return m.runAction(action)
			}
			return m, nil
		}
		m.pressWindow(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.drag != nil {
			m.desk.Move(m.drag.id, desktop.Position{X: msg.X - m.drag.offX, Y: msg.Y - m.drag.offY})
		}

	case tea.MouseActionRelease:
		m.drag = nil
	}
	return m, nil
}

// pressWindow hit-tests windows from the top of the stack down.
func (m *Model) pressWindow(x, y int) {
	opts := m.desk.Options()
	stack := m.desk.Stacked()
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		switch hitWindow(w.Pos, opts.WindowWidth, opts.WindowHeight, x, y) {
		case hitClose:
			m.desk.Close(w.ID)
			m.syncEngines()
			return
		case hitTitle:
			m.desk.Focus(w.ID)
			m.drag = &dragState{id: w.ID, offX: x - w.Pos.X, offY: y - w.Pos.Y}
			return
		case hitBody:
			m.desk.Focus(w.ID)
			return
		case hitNone:
		}
	}
}

// handleFrame advances every engine and the sprites by the time since the
// previous frame.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = max(0, min(now.Sub(m.lastTick), MaxFrameDelta))
	}
	m.lastTick = now

	m.arena.Advance(dt)
	m.desk.Step(dt)

	if m.status != "" && !now.Before(m.statusUntil) {
		m.status = ""
	}
	return m, frameCmd(m.cfg.FrameInterval())
}

// syncEngines gives every drawn window an engine and drops engines whose
// window is gone.
func (m Model) syncEngines() {
	for _, w := range m.desk.Windows() {
		if _, ok := m.arena.Get(w.ID); ok {
			continue
		}
		var lines []script.Line
		if s, ok := m.scripts.Get(w.ScriptID); ok {
			lines = s.Lines
		} else {
			m.logger.Warn("unknown script", slog.String("terminal", w.ID), slog.String("script", w.ScriptID))
		}
		m.arena.Spawn(w.ID, lines)
	}
	m.arena.Retain(m.desk.IDs())
	for id := range m.windows {
		if _, ok := m.arena.Get(id); !ok {
			delete(m.windows, id)
		}
	}
}

// reloadCustom refreshes the custom scripts in the pool.
func (m Model) reloadCustom() {
	m.scripts.SetCustom(m.custom.Scripts())
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusUntil = time.Now().Add(StatusDuration)
}

func (m *Model) openEditor() tea.Cmd {
	_, focused := m.desk.Focused()
	modal, cmd := newEditorModal(m.custom, m.locale, m.themes.Current(), m.width, focused)
	m.modal = modal
	m.showHelp = false
	return cmd
}

func (m Model) handleEditorSaved(msg editorSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("custom content not saved", slog.Any("err", msg.err))
		m.setStatus(m.locale.T("customTerminal.saveFailed", i18n.Args{"error": msg.err}))
		return m, nil
	}

	m.reloadCustom()
	m.setStatus(m.locale.T("app.contentSaved", i18n.Args{"name": msg.content.Name}))
	if !msg.apply {
		return m, nil
	}

	w, ok := m.desk.Focused()
	if !ok {
		return m, nil
	}
	m.desk.Reassign(w.ID, msg.content.ID)
	m.arena.Remove(w.ID)
	m.syncEngines()
	m.setStatus(m.locale.T("app.assigned", i18n.Args{
		"terminal": m.locale.T("terminal.title", i18n.Args{"number": strconv.Itoa(w.Seq)}),
		"name":     msg.content.Name,
	}))
	return m, nil
}

// Rendering

// renderDesktop draws the windows bottom to top, then the sprites.
func (m Model) renderDesktop() *canvas {
	th := m.themes.Current()
	c := newCanvas(m.width, m.desktopHeight(), newSurface(th.Background))

	focused, _ := m.desk.Focused()
	for _, w := range m.desk.Stacked() {
		c.place(m.windowView(w, th, w.ID == focused.ID), w.Pos.X, w.Pos.Y)
	}

	sprite := th.Styles().Sprite.Render(catGlyph)
	for _, s := range m.desk.Overlay.Sprites() {
		x, y := desktop.GridPos(&s.Kinetic)
		c.place(sprite, x, y)
	}
	return c
}

// windowView renders w, reusing last frame's output when nothing changed.
func (m Model) windowView(w desktop.Instance, th theme.Theme, focused bool) string {
	eng, _ := m.arena.Get(w.ID)
	k := windowKeyFor(w, eng, th.Name, m.locale.Locale(), focused)
	if cached, ok := m.windows[w.ID]; ok && cached.key == k {
		return cached.out
	}
	opts := m.desk.Options()
	out := renderWindow(w, eng, th, m.locale.T, focused, opts.WindowWidth, opts.WindowHeight)
	m.windows[w.ID] = windowCache{key: k, out: out}
	return out
}

// terminalFrame renders the focused window, or the topmost one.
func (m Model) terminalFrame() (string, bool) {
	w, focused := m.desk.Focused()
	if !focused {
		stack := m.desk.Stacked()
		if len(stack) == 0 {
			return "", false
		}
		w = stack[len(stack)-1]
	}
	return m.windowView(w, m.themes.Current(), focused), true
}

// helpStyles colors the control bar key help from the theme.
func helpStyles(th theme.Theme) help.Styles {
	bg := lipgloss.Color(th.Panel)
	keyStyle := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(th.Accent))
	descStyle := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(th.Muted))
	return help.Styles{
		ShortKey:       keyStyle,
		ShortDesc:      descStyle,
		ShortSeparator: descStyle,
		Ellipsis:       descStyle,
		FullKey:        keyStyle,
		FullDesc:       descStyle,
		FullSeparator:  descStyle,
	}
}

// Screenshots

func (m Model) screenshotCmd(frame, prefix string) tea.Cmd {
	if m.shooter == nil {
		return nil
	}
	shooter, ctx := m.shooter, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ScreenshotTimeout)
		defer cancel()
		return screenshotMsg{result: shooter.Take(ctx, frame, prefix)}
	}
}

func (m Model) screenshotStatus(res screenshot.Result) string {
	switch {
	case res.Copied:
		return m.locale.T("screenshot.copied")
	case res.Success:
		return m.locale.T("screenshot.saved", i18n.Args{"path": res.Path})
	default:
		return screenshotFailure(m.locale, res.Err)
	}
}

func screenshotFailure(locale *i18n.Provider, err error) string {
	if errors.Is(err, screenshot.ErrBusy) {
		return locale.T("screenshot.busy")
	}
	if err == nil {
		err = errors.New("unknown error")
	}
	return locale.T("screenshot.failed", i18n.Args{"error": err})
}

// Messages

type frameMsg time.Time

type screenshotMsg struct {
	result screenshot.Result
}

type customChangedMsg struct{}

// Commands

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return customChangedMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
