package state

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch follows the backing file until ctx is done, reloading on external
// changes and calling onChange after each reload that altered the contents.
// The parent directory is watched so that atomic renames are seen.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer func() {
			if err := watcher.Close(); err != nil {
				s.logger.Error("close watcher", slog.Any("err", err))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != s.path {
					continue
				}
				// Ignore events that are not related to file content changes.
				if evt.Has(fsnotify.Chmod) {
					continue
				}

				changed, err := s.Reload()
				if err != nil {
					s.logger.Warn("reload store",
						slog.String("event", evt.String()),
						slog.Any("err", err),
					)
				}
				if changed && onChange != nil {
					onChange()
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Error("store watcher", slog.Any("err", err))
			}
		}
	}()

	return nil
}
