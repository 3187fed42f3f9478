package screenshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Filename prefixes by capture source.
const (
	DefaultPrefix  = "screenshot"
	DesktopPrefix  = "all-terminals"
	TerminalPrefix = "terminal-screenshot"
)

// maxSuffix bounds the numbered names tried when a fallback file exists.
const maxSuffix = 1000

// ErrBusy reports a capture requested while another is in flight.
var ErrBusy = errors.New("screenshot already in progress")

// Result describes one capture.
type Result struct {
	Success bool
	PNG     []byte
	// Copied is true when the image reached the clipboard.
	Copied bool
	// Path is set when the image was written to disk instead.
	Path string
	Err  error
}

// Filename returns "<prefix>_<UTC timestamp>.png".
func Filename(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "_" + t.UTC().Format("2006-01-02_15-04-05") + ".png"
}

// Capture rasterizes frame and encodes it as PNG.
func Capture(r Rasterizer, frame string) Result {
	img, err := r.Rasterize(frame)
	if err != nil {
		return Result{Err: fmt.Errorf("rasterize: %w", err)}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{Err: fmt.Errorf("encode png: %w", err)}
	}
	return Result{Success: true, PNG: buf.Bytes()}
}

// Shooter captures frames to the clipboard, falling back to a file.
type Shooter struct {
	Rasterizer Rasterizer
	Clipboard  Clipboard
	Dir        string
	Logger     *slog.Logger

	now  func() time.Time
	busy atomic.Bool
}

// NewShooter returns a Shooter writing fallback files into dir.
func NewShooter(r Rasterizer, cb Clipboard, dir string, logger *slog.Logger) *Shooter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shooter{Rasterizer: r, Clipboard: cb, Dir: dir, Logger: logger, now: time.Now}
}

// Busy reports whether a capture is running.
func (s *Shooter) Busy() bool { return s.busy.Load() }

// Take rasterizes frame and delivers it. Only one capture runs at a time.
func (s *Shooter) Take(ctx context.Context, frame, prefix string) Result {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{Err: ErrBusy}
	}
	defer s.busy.Store(false)

	res := Capture(s.Rasterizer, frame)
	if !res.Success {
		s.Logger.Error("screenshot capture failed", slog.Any("err", res.Err))
		return res
	}
	data := res.PNG

	if s.Clipboard != nil {
		err := s.Clipboard.WriteImage(ctx, data)
		if err == nil {
			s.Logger.Info("screenshot copied to clipboard", slog.Int("bytes", len(data)))
			return Result{Success: true, PNG: data, Copied: true}
		}
		s.Logger.Warn("clipboard unavailable, saving file", slog.Any("err", err))
	}

	path, err := s.save(prefix, data)
	if err != nil {
		s.Logger.Error("screenshot save failed", slog.Any("err", err))
		return Result{PNG: data, Err: err}
	}
	s.Logger.Info("screenshot saved", slog.String("path", path))
	return Result{Success: true, PNG: data, Path: path}
}

func (s *Shooter) save(prefix string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	name := Filename(prefix, s.now())
	base := strings.TrimSuffix(name, ".png")
	for n := 1; n <= maxSuffix; n++ {
		if n > 1 {
			name = base + "_" + strconv.Itoa(n) + ".png"
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write screenshot: %w", err)
		}
		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("write screenshot: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("write screenshot: no free name for %s", base)
}
