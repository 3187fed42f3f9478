package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/custom"
)

func TestListCustomShowsRelativeTimes(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := listCustom(&buf, []custom.Option{
		{ID: "custom-1-a", Name: "Deploy", LineCount: 4, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "custom-2-b", Name: "Chat", LineCount: 12, CreatedAt: now.Add(-72 * time.Hour)},
	}, now)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Deploy")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "12")
}

func TestIsUsageError(t *testing.T) {
	t.Parallel()

	assert.True(t, isUsageError(errors.New(`unknown flag: --nope`)))
	assert.True(t, isUsageError(errors.New("invalid argument: bad color")))
	assert.False(t, isUsageError(errors.New("load config: boom")))
}

func TestFlagToEnvName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MULTITERM_LOG_LEVEL", flagToEnvName("log-level"))
	assert.Equal(t, "MULTITERM_CONFIG", flagToEnvName("config"))
}
