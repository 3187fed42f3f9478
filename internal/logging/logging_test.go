package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/logging"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	for _, format := range logging.AllFormats {
		var buf bytes.Buffer
		h, err := logging.CreateHandlerWithStrings(&buf, "debug", format)
		require.NoError(t, err, format)

		slog.New(h).Info("hello", slog.String("who", "world"))
		assert.Contains(t, buf.String(), "hello", format)
		assert.Contains(t, buf.String(), "world", format)
	}
}

func TestCreateHandlerRejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := logging.CreateHandlerWithStrings(&bytes.Buffer{}, "loud", "text")
	require.ErrorIs(t, err, logging.ErrInvalidArgument)
	require.ErrorIs(t, err, logging.ErrUnknownLogLevel)

	_, err = logging.CreateHandlerWithStrings(&bytes.Buffer{}, "info", "xml")
	require.ErrorIs(t, err, logging.ErrUnknownLogFormat)
}

func TestGetLevel(t *testing.T) {
	t.Parallel()

	lvl, err := logging.GetLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

func TestLevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, err := logging.CreateHandlerWithStrings(&buf, "warn", "json")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	ctx := logging.NewContext(context.Background(), logger)
	assert.Same(t, logger, logging.WithContext(ctx))
	assert.Same(t, slog.Default(), logging.WithContext(context.Background()))
}

func TestOpenFileCreatesDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "app.log")
	f, err := logging.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = f.WriteString("line\n")
	require.NoError(t, err)
}

func TestCircularBufferWraps(t *testing.T) {
	t.Parallel()

	cb := logging.NewCircularBuffer(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		_, err := cb.Write([]byte(s))
		require.NoError(t, err)
	}

	assert.True(t, cb.IsFull())
	assert.Equal(t, 3, cb.Size())

	var out strings.Builder
	_, err := cb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "bcd", out.String())

	cb.Clear()
	assert.Zero(t, cb.Size())
	assert.Nil(t, cb.Entries())
	assert.Equal(t, 100, logging.NewCircularBuffer(0).Capacity())
}

func TestTail(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "multiterm.log")
	var content strings.Builder
	for i := 1; i <= 10; i++ {
		content.WriteString("line " + strconv.Itoa(i) + "\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(content.String()), 0o644))

	tcs := map[string]struct {
		n    int
		want []string
	}{
		"none":     {n: 0, want: nil},
		"partial":  {n: 3, want: []string{"line 8", "line 9", "line 10"}},
		"exact":    {n: 10, want: strings.Split(strings.TrimSpace(content.String()), "\n")},
		"more":     {n: 20, want: strings.Split(strings.TrimSpace(content.String()), "\n")},
		"one":      {n: 1, want: []string{"line 10"}},
		"wrapping": {n: 4, want: []string{"line 7", "line 8", "line 9", "line 10"}},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := logging.Tail(path, tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTailMissingFile(t *testing.T) {
	t.Parallel()

	got, err := logging.Tail(filepath.Join(t.TempDir(), "absent.log"), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
