// Package prefs persists the choices a user makes while multiterm runs: the
// active theme and the interface locale. They live in
// ~/.config/multiterm/prefs.toml, separate from the hand-edited config.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the persisted choices. An empty Locale means the locale is
// detected from the environment.
type Prefs struct {
	Theme  string `toml:"theme"`
	Locale string `toml:"locale,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/multiterm/prefs.toml"
	defaultTheme     = "Dark"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used before anything is saved.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

func (p Prefs) normalize() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.Locale = strings.TrimSpace(p.Locale)
	return p
}

// Load reads preferences from path. A missing, unreadable or malformed file
// yields the defaults; the error is returned alongside for logging.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse prefs: %w", err)
	}
	return p.normalize(), nil
}

// Save writes p to path through a temporary file, creating directories as
// needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Store keeps the current preferences and saves them on every change.
// It is safe for concurrent use.
type Store struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	prefs Prefs
}

// Open loads the preferences at path. Load failures are logged and the
// defaults are used.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	p, err := Load(path)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", slog.Any("err", err))
	}
	return &Store{path: path, logger: logger, prefs: p}
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetTheme records the theme name and saves.
func (s *Store) SetTheme(name string) {
	s.update(func(p *Prefs) { p.Theme = name })
}

// SetLocale records the locale and saves.
func (s *Store) SetLocale(locale string) {
	s.update(func(p *Prefs) { p.Locale = locale })
}

func (s *Store) update(fn func(*Prefs)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	next = next.normalize()
	if next == s.prefs {
		return
	}
	s.prefs = next
	if err := Save(s.path, next); err != nil {
		s.logger.Warn("preferences not saved", slog.Any("err", err))
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
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
