package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/multiterm/internal/config"
	"github.com/five82/multiterm/internal/custom"
	"github.com/five82/multiterm/internal/i18n"
	"github.com/five82/multiterm/internal/logging"
	"github.com/five82/multiterm/internal/prefs"
	"github.com/five82/multiterm/internal/screenshot"
	"github.com/five82/multiterm/internal/script"
	"github.com/five82/multiterm/internal/shortcuts"
	"github.com/five82/multiterm/internal/state"
	"github.com/five82/multiterm/internal/theme"
	"github.com/five82/multiterm/internal/ui"
)

const (
	// logBufferSize is how many records are kept in memory for the exit report.
	logBufferSize = 200

	defaultLogLevel  = "info"
	defaultLogFormat = "logfmt"
)

// Options configure the multiterm application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/multiterm/prefs.toml
	LogLevel   string
	LogFormat  string
}

// Env holds the services both pages share.
type Env struct {
	Config  config.Config
	Logger  *slog.Logger
	Store   *state.Store
	Custom  *custom.Store
	Scripts *script.Registry
	Themes  *theme.Provider
	Locale  *i18n.Provider
	Shooter *screenshot.Shooter

	Prefs     *prefs.Store
	Shortcuts *shortcuts.Registry

	logs    *logging.CircularBuffer
	logFile io.Closer
}

// Setup loads configuration and preferences and builds the shared services.
// Only configuration and logging flag errors are fatal.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	env := &Env{Config: cfg, logs: logging.NewCircularBuffer(logBufferSize)}

	var out io.Writer = env.logs
	var logFileErr error
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			logFileErr = err
		} else {
			env.logFile = f
			out = io.MultiWriter(env.logs, f)
		}
	}
	level, format := opts.LogLevel, opts.LogFormat
	if level == "" {
		level = defaultLogLevel
	}
	if format == "" {
		format = defaultLogFormat
	}
	handler, err := logging.CreateHandlerWithStrings(out, level, format)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("create log handler: %w", err)
	}
	env.Logger = slog.New(handler)
	if logFileErr != nil {
		env.Logger.Warn("log file unavailable", slog.String("path", cfg.LogFile), slog.Any("err", logFileErr))
	}

	env.Prefs = prefs.Open(opts.PrefsPath, env.Logger)
	userPrefs := env.Prefs.Get()

	store, err := state.Open(cfg.StoragePath, env.Logger)
	if err != nil {
		env.Logger.Warn("storage unavailable, keeping content in memory", slog.Any("err", err))
		store = state.NewMemory()
	}
	env.Store = store

	env.Custom = custom.NewStore(store, env.Logger)
	if _, err := env.Custom.EnsureDefault(); err != nil {
		env.Logger.Warn("default custom content not saved", slog.Any("err", err))
	}

	scripts, err := script.NewRegistry()
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	scripts.SetCustom(env.Custom.Scripts())
	env.Scripts = scripts

	env.Themes = theme.NewProvider(userPrefs.Theme)
	env.Locale = i18n.NewProvider(i18n.MustLoadCatalog(), i18n.Detect(userPrefs.Locale))
	env.Themes.Subscribe(func(t theme.Theme) { env.Prefs.SetTheme(t.Name) })
	env.Locale.Subscribe(env.Prefs.SetLocale)

	var clip screenshot.Clipboard
	if cb, err := screenshot.NewCommandClipboard(cfg.ClipboardCommand); err != nil {
		env.Logger.Warn("clipboard command ignored", slog.Any("err", err))
	} else {
		clip = cb
	}
	th := env.Themes.Current()
	raster := screenshot.NewBitmapRasterizer(hexColor(th.Text), hexColor(th.Background))
	env.Shooter = screenshot.NewShooter(raster, clip, cfg.ScreenshotDir, env.Logger)
	env.Shortcuts = bindShortcuts(cfg.Keys, env.Logger)

	return env, nil
}

// bindShortcuts applies the configured key overrides to the default bindings.
func bindShortcuts(keys map[string]string, logger *slog.Logger) *shortcuts.Registry {
	reg := shortcuts.Default()
	actions := make([]string, 0, len(keys))
	for action := range keys {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		if err := reg.Rebind(shortcuts.Action(action), keys[action]); err != nil {
			logger.Warn("shortcut override ignored",
				slog.String("action", action),
				slog.String("key", keys[action]),
				slog.Any("err", err))
		}
	}
	return reg
}

// Close releases the log file.
func (e *Env) Close() error {
	if e.logFile == nil {
		return nil
	}
	err := e.logFile.Close()
	e.logFile = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// DumpLogs writes the buffered log records to w.
func (e *Env) DumpLogs(w io.Writer) {
	if e.logs.Size() == 0 {
		return
	}
	if _, err := e.logs.WriteTo(w); err != nil {
		e.Logger.Error("write buffered logs", slog.Any("err", err))
	}
}

// Run boots the multiterm desktop until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}
	if err := env.Store.Watch(ctx, notify); err != nil {
		env.Logger.Warn("file notifications unavailable, polling storage", slog.Any("err", err))
		StartPoller(ctx, env.Store, defaultPollInterval, notify, env.Logger)
	}

	err = ui.Run(ui.Options{
		Context:   logging.NewContext(ctx, env.Logger),
		Config:    &env.Config,
		Scripts:   env.Scripts,
		Custom:    env.Custom,
		Themes:    env.Themes,
		Locale:    env.Locale,
		Shortcuts: env.Shortcuts,
		Shooter:   env.Shooter,
		Logger:    env.Logger,
		Changes:   changes,
	})
	if err != nil {
		env.DumpLogs(os.Stderr)
		return fmt.Errorf("run desktop: %w", err)
	}
	return nil
}

// RunTyper opens the ASCII typer page seeded with lines.
func RunTyper(ctx context.Context, opts Options, lines []string) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	err = ui.RunTyper(ui.TyperOptions{
		Context: ctx,
		Themes:  env.Themes,
		Locale:  env.Locale,
		Shooter: env.Shooter,
		Logger:  env.Logger,
		Lines:   lines,
	})
	if err != nil {
		env.DumpLogs(os.Stderr)
		return fmt.Errorf("run typer: %w", err)
	}
	return nil
}

// hexColor converts a theme color to RGBA, falling back to black.
func hexColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
