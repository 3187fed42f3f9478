package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the desktop's tunables.
type Config struct {
	Speed     time.Duration
	TokenMode bool
	Loop      bool
	LoopDelay time.Duration

	InitialTerminals       int
	MaxTerminals           int
	RenderCap              int
	ReducedRenderCap       int
	ReducedRenderThreshold int
	ScriptOrder            string
	WindowWidth            int
	WindowHeight           int
	FPS                    int

	ScreenshotDir    string
	ClipboardCommand string
	StoragePath      string
	LogFile          string

	// Keys rebinds shortcut actions to bubbletea key strings.
	Keys map[string]string
}

const (
	defaultConfigPath       = "~/.config/multiterm/config.toml"
	defaultScreenshotDir    = "~/Pictures"
	defaultStoragePath      = "~/.local/share/multiterm/storage.json"
	defaultLogFile          = "~/.local/state/multiterm/multiterm.log"
	defaultSpeedMS          = 100
	defaultLoopDelayMS      = 3000
	defaultInitialTerminals = 1
	defaultMaxTerminals     = 10000
	defaultRenderCap        = 80
	defaultReducedCap       = 40
	defaultReducedThreshold = 1000
	defaultWindowWidth      = 44
	defaultWindowHeight     = 12
	defaultFPS              = 30
	maxFPS                  = 120
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Speed:                  defaultSpeedMS * time.Millisecond,
		TokenMode:              true,
		Loop:                   true,
		LoopDelay:              defaultLoopDelayMS * time.Millisecond,
		InitialTerminals:       defaultInitialTerminals,
		MaxTerminals:           defaultMaxTerminals,
		RenderCap:              defaultRenderCap,
		ReducedRenderCap:       defaultReducedCap,
		ReducedRenderThreshold: defaultReducedThreshold,
		ScriptOrder:            "random",
		WindowWidth:            defaultWindowWidth,
		WindowHeight:           defaultWindowHeight,
		FPS:                    defaultFPS,
		ScreenshotDir:          mustExpand(defaultScreenshotDir),
		StoragePath:            mustExpand(defaultStoragePath),
		LogFile:                mustExpand(defaultLogFile),
	}
}

type rawConfig struct {
	SpeedMS                *int   `toml:"speed_ms"`
	TokenMode              *bool  `toml:"token_mode"`
	Loop                   *bool  `toml:"loop"`
	LoopDelayMS            *int   `toml:"loop_delay_ms"`
	InitialTerminals       *int   `toml:"initial_terminals"`
	MaxTerminals           *int   `toml:"max_terminals"`
	RenderCap              *int   `toml:"render_cap"`
	ReducedRenderCap       *int   `toml:"reduced_render_cap"`
	ReducedRenderThreshold *int   `toml:"reduced_render_threshold"`
	ScriptOrder            string `toml:"script_order"`
	WindowWidth            *int   `toml:"window_width"`
	WindowHeight           *int   `toml:"window_height"`
	FPS                    *int   `toml:"fps"`
	ScreenshotDir          string `toml:"screenshot_dir"`
	ClipboardCommand       string `toml:"clipboard_command"`
	StoragePath            string `toml:"storage_path"`
	LogFile                string `toml:"log_file"`

	Keys map[string]string `toml:"keys"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := raw.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (r rawConfig) apply(cfg *Config) error {
	if r.SpeedMS != nil {
		if *r.SpeedMS <= 0 {
			return fmt.Errorf("speed_ms must be positive, got %d", *r.SpeedMS)
		}
		cfg.Speed = time.Duration(*r.SpeedMS) * time.Millisecond
	}
	if r.TokenMode != nil {
		cfg.TokenMode = *r.TokenMode
	}
	if r.Loop != nil {
		cfg.Loop = *r.Loop
	}
	if r.LoopDelayMS != nil {
		if *r.LoopDelayMS < 0 {
			return fmt.Errorf("loop_delay_ms must not be negative, got %d", *r.LoopDelayMS)
		}
		cfg.LoopDelay = time.Duration(*r.LoopDelayMS) * time.Millisecond
	}

	positive := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"max_terminals", r.MaxTerminals, &cfg.MaxTerminals},
		{"initial_terminals", r.InitialTerminals, &cfg.InitialTerminals},
		{"render_cap", r.RenderCap, &cfg.RenderCap},
		{"reduced_render_cap", r.ReducedRenderCap, &cfg.ReducedRenderCap},
		{"reduced_render_threshold", r.ReducedRenderThreshold, &cfg.ReducedRenderThreshold},
		{"window_width", r.WindowWidth, &cfg.WindowWidth},
		{"window_height", r.WindowHeight, &cfg.WindowHeight},
		{"fps", r.FPS, &cfg.FPS},
	}
	for _, f := range positive {
		if f.src == nil {
			continue
		}
		if *f.src < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", f.name, *f.src)
		}
		*f.dst = *f.src
	}
	cfg.InitialTerminals = min(cfg.InitialTerminals, cfg.MaxTerminals)
	cfg.FPS = min(cfg.FPS, maxFPS)

	switch order := strings.ToLower(strings.TrimSpace(r.ScriptOrder)); order {
	case "":
	case "random", "sequential":
		cfg.ScriptOrder = order
	default:
		return fmt.Errorf("script_order must be random or sequential, got %q", r.ScriptOrder)
	}

	for action, code := range r.Keys {
		if cfg.Keys == nil {
			cfg.Keys = make(map[string]string, len(r.Keys))
		}
		cfg.Keys[strings.TrimSpace(action)] = strings.TrimSpace(code)
	}

	cfg.ClipboardCommand = strings.TrimSpace(r.ClipboardCommand)
	for _, p := range []struct {
		src string
		dst *string
	}{
		{r.ScreenshotDir, &cfg.ScreenshotDir},
		{r.StoragePath, &cfg.StoragePath},
		{r.LogFile, &cfg.LogFile},
	} {
		if v := strings.TrimSpace(p.src); v != "" {
			*p.dst = mustExpand(v)
		}
	}
	return nil
}

// FrameInterval is the time between UI frames.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < 1 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
