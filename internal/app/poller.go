package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/multiterm/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that reloads the store at a
// fixed cadence and calls onChange when the file contents changed. It is the
// fallback when file notifications are unavailable. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, interval time.Duration, onChange func(), logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			changed, err := store.Reload()
			if err != nil {
				failures++
				logger.Warn("store reload failed",
					slog.Int("failures", failures),
					slog.Time("last_loaded", store.LastLoaded()),
					slog.Any("err", err),
				)
			} else {
				failures = 0
			}
			if changed && onChange != nil {
				onChange()
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	d := interval
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
