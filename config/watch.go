package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long Watch waits for writes to settle.
const DefaultWatchDebounce = 200 * time.Millisecond

// Watch reloads the config file at path whenever it changes and passes the
// result to onChange. It blocks until ctx is cancelled. Invalid files are
// logged and skipped; the previous config stays in effect.
//
// The parent directory is watched rather than the file so that editors that
// replace the file by rename are still picked up.
func (l *Loader) Watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config)) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	l.logger.Info("Watching config file", "path", absPath, "debounce", debounce)

	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				l.logger.Debug("Config change detected", "path", absPath, "op", event.Op.String())
				pending = true
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			l.logger.Error("Config watcher error", "error", err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false

			cfg, err := l.LoadFile(absPath)
			if err != nil {
				l.logger.Warn("Ignoring invalid config change", "path", absPath, "error", err)
				continue
			}
			l.logger.Info("Config reloaded", "path", absPath)
			onChange(cfg)
		}
	}
}
