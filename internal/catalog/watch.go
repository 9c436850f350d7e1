package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads c from dir on the OS filesystem whenever a catalog file
// changes, until ctx is canceled.
func (c *Catalog) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go c.watchFiles(ctx, watcher, afero.NewOsFs(), dir)
	slog.Info("Watching catalog directory for changes", "dir", dir)
	return nil
}

func (c *Catalog) watchFiles(ctx context.Context, watcher *fsnotify.Watcher, fsys afero.Fs, dir string) {
	defer watcher.Close()

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Catalog watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				// Editors write in bursts; reload once things settle.
				reload = time.After(reloadDebounce)
			}

		case <-reload:
			reload = nil
			if err := c.Reload(fsys, dir); err != nil {
				slog.Error("Catalog reload failed, keeping previous data", "dir", dir, "error", err)
				continue
			}
			slog.Info("Catalog reloaded", "dir", dir)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Catalog watcher error", "error", err)
		}
	}
}
