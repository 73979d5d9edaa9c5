package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"domainbot/internal/contextutil"
)

// settle is how long the file must stay quiet before it is re-applied.
// Editors often write a file in several steps.
const settle = 200 * time.Millisecond

// Watch calls apply every time the file at path is written or replaced,
// until ctx is done. The parent directory is watched so that editors which
// save by renaming a temporary file are seen too.
func Watch(ctx context.Context, path string, apply func(ctx context.Context) error) error {
	logger := contextutil.LoggerFromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve seed path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.InfoContext(ctx, "watching seed file", "path", abs)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(settle)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "seed watcher error", "error", err)

		case <-pending:
			pending = nil
			if err := apply(ctx); err != nil {
				logger.ErrorContext(ctx, "failed to re-apply seed file", "path", abs, "error", err)
				continue
			}
			logger.InfoContext(ctx, "seed file re-applied", "path", abs)
		}
	}
}
