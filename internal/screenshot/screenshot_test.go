package screenshot

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/logging"
)

var (
	testFG = rgb(0xee, 0xee, 0xee)
	testBG = rgb(0x10, 0x10, 0x10)
)

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

func TestParseFrameColors(t *testing.T) {
	frame := "\x1b[31mA\x1b[0mB\x1b[1;38;2;1;2;3;48;5;21mC\x1b[22;39;49mD"
	g := ParseFrame(frame, testFG, testBG)

	require.Len(t, g.Cells, 1)
	row := g.Cells[0]
	require.Len(t, row, 4)
	assert.Equal(t, 'A', row[0].Rune)
	assert.Equal(t, rgb(0x80, 0, 0), row[0].FG)
	assert.Equal(t, testFG, row[1].FG)
	assert.Equal(t, rgb(1, 2, 3), row[2].FG)
	assert.Equal(t, rgb(0, 0, 0xff), row[2].BG)
	assert.True(t, row[2].Bold)
	assert.False(t, row[3].Bold)
	assert.Equal(t, testFG, row[3].FG)
	assert.Equal(t, testBG, row[3].BG)
}

func TestParseFrameAttributes(t *testing.T) {
	tcs := map[string]struct {
		frame  string
		fg, bg color.RGBA
	}{
		"reverse swaps defaults": {frame: "\x1b[7mX\x1b[0m", fg: testBG, bg: testFG},
		"reverse swaps colors":   {frame: "\x1b[7;38;2;1;2;3;48;2;4;5;6mX", fg: rgb(4, 5, 6), bg: rgb(1, 2, 3)},
		"reverse reset":          {frame: "\x1b[7m\x1b[27mX", fg: testFG, bg: testBG},
		"conceal hides text":     {frame: "\x1b[8;31mX", fg: testBG, bg: testBG},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			g := ParseFrame(tc.frame, testFG, testBG)
			require.Len(t, g.Cells, 1)
			require.Len(t, g.Cells[0], 1)
			c := g.Cells[0][0]
			assert.Equal(t, 'X', c.Rune)
			assert.Equal(t, tc.fg, c.FG)
			assert.Equal(t, tc.bg, c.BG)
		})
	}
}

func TestParseFrameWideRunesAndPadding(t *testing.T) {
	g := ParseFrame("中a\nxyz12", testFG, testBG)

	assert.Equal(t, 5, g.Cols)
	require.Len(t, g.Cells, 2)
	first := g.Cells[0]
	require.Len(t, first, 5)
	assert.Equal(t, '中', first[0].Rune)
	assert.True(t, first[1].Cont)
	assert.Equal(t, 'a', first[2].Rune)
	assert.Equal(t, ' ', first[4].Rune)
	assert.Equal(t, testBG, first[4].BG)
}

func TestParseFrameSkipsNonSGR(t *testing.T) {
	g := ParseFrame("\x1b]8;;http://x\x07L\x1b]8;;\x07\x1b[2Kz", testFG, testBG)
	require.Len(t, g.Cells, 1)
	require.Len(t, g.Cells[0], 2)
	assert.Equal(t, 'L', g.Cells[0][0].Rune)
	assert.Equal(t, 'z', g.Cells[0][1].Rune)
}

func TestParseFrameEmpty(t *testing.T) {
	assert.Equal(t, Grid{}, ParseFrame("", testFG, testBG))
	assert.Equal(t, Grid{}, ParseFrame("\x1b[31m\n", testFG, testBG))
}

func TestRasterizeSize(t *testing.T) {
	r := NewBitmapRasterizer(testFG, testBG)
	img, err := r.Rasterize("╭─╮\n│x│\n╰─╯")
	require.NoError(t, err)
	assert.Equal(t, 3*7, img.Bounds().Dx())
	assert.Equal(t, 3*13, img.Bounds().Dy())

	r.Scale = 2
	img, err = r.Rasterize("ab")
	require.NoError(t, err)
	assert.Equal(t, 2*7*2, img.Bounds().Dx())
	assert.Equal(t, 13*2, img.Bounds().Dy())
}

func TestRasterizeWideMissingGlyph(t *testing.T) {
	img, err := NewBitmapRasterizer(testFG, testBG).Rasterize("中")
	require.NoError(t, err)
	require.Equal(t, 2*7, img.Bounds().Dx())

	// The placeholder box spans both cells.
	assert.Equal(t, testFG, img.At(2, 6))
	assert.Equal(t, testFG, img.At(11, 6))
	assert.Equal(t, testBG, img.At(13, 6))
}

func TestRasterizeEmpty(t *testing.T) {
	_, err := NewBitmapRasterizer(testFG, testBG).Rasterize("")
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 2, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "screenshot_2024-03-09_06-05-02.png", Filename("", ts))
	assert.Equal(t, "all-terminals_2024-03-09_06-05-02.png", Filename(DesktopPrefix, ts))
	assert.Equal(t, "typer_2024-03-09_06-05-02.png", Filename("typer", ts))
}

type fakeClipboard struct {
	err  error
	got  []byte
	hold chan struct{}
}

func (f *fakeClipboard) WriteImage(_ context.Context, data []byte) error {
	if f.hold != nil {
		<-f.hold
	}
	f.got = data
	return f.err
}

func newTestShooter(t *testing.T, cb Clipboard) *Shooter {
	t.Helper()
	s := NewShooter(NewBitmapRasterizer(testFG, testBG), cb, t.TempDir(), logging.Discard())
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestTakeCopiesToClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	s := newTestShooter(t, cb)

	res := s.Take(context.Background(), "hello", "")
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.True(t, res.Copied)
	assert.Empty(t, res.Path)
	assert.Equal(t, res.PNG, cb.got)

	_, err := png.Decode(bytes.NewReader(res.PNG))
	assert.NoError(t, err)
}

func TestTakeFallsBackToFile(t *testing.T) {
	s := newTestShooter(t, &fakeClipboard{err: errors.New("no display")})

	res := s.Take(context.Background(), "hello", "typer")
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.False(t, res.Copied)
	assert.Equal(t, filepath.Join(s.Dir, "typer_2024-01-02_03-04-05.png"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.PNG, data)
}

func TestTakeSameSecondKeepsBothFiles(t *testing.T) {
	s := newTestShooter(t, nil)

	first := s.Take(context.Background(), "one", DesktopPrefix)
	second := s.Take(context.Background(), "two", DesktopPrefix)
	third := s.Take(context.Background(), "three", DesktopPrefix)
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	require.NoError(t, third.Err)

	assert.Equal(t, filepath.Join(s.Dir, "all-terminals_2024-01-02_03-04-05.png"), first.Path)
	assert.Equal(t, filepath.Join(s.Dir, "all-terminals_2024-01-02_03-04-05_2.png"), second.Path)
	assert.Equal(t, filepath.Join(s.Dir, "all-terminals_2024-01-02_03-04-05_3.png"), third.Path)

	for _, res := range []Result{first, second, third} {
		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Equal(t, res.PNG, data)
	}
}

func TestTakeWithoutClipboard(t *testing.T) {
	s := newTestShooter(t, nil)
	res := s.Take(context.Background(), "x", "")
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.Path)
}

func TestTakeBusy(t *testing.T) {
	cb := &fakeClipboard{hold: make(chan struct{})}
	s := newTestShooter(t, cb)

	done := make(chan Result)
	go func() { done <- s.Take(context.Background(), "x", "") }()

	require.Eventually(t, s.Busy, time.Second, time.Millisecond)
	res := s.Take(context.Background(), "y", "")
	assert.ErrorIs(t, res.Err, ErrBusy)
	assert.False(t, res.Success)

	close(cb.hold)
	first := <-done
	assert.True(t, first.Success)
	assert.False(t, s.Busy())
}

func TestTakeEmptyFrameFails(t *testing.T) {
	s := newTestShooter(t, &fakeClipboard{})
	res := s.Take(context.Background(), "", "")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrEmptyFrame)
}

func TestNewCommandClipboard(t *testing.T) {
	cb, err := NewCommandClipboard("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCommands, cb.candidates)

	cb, err = NewCommandClipboard(`my-copy --mime "image/png"`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"my-copy", "--mime", "image/png"}}, cb.candidates)

	_, err = NewCommandClipboard(`bad "quote`)
	assert.Error(t, err)
}

func TestCommandClipboardNoTool(t *testing.T) {
	cb, err := NewCommandClipboard("")
	require.NoError(t, err)
	cb.lookPath = func(string) (string, error) { return "", errors.New("missing") }
	assert.ErrorIs(t, cb.WriteImage(context.Background(), []byte{1}), ErrNoClipboard)
}
