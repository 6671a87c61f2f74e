// Package watcher reloads plugin manifests when files under the plugins
// directory change. Bursts of events are debounced into a single reload.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/blockpaste/internal/ctxlog"
)

// DefaultDebounce is the quiet period before a reload fires.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Path is the directory to watch, recursively.
	Path string
	// Extension selects the files whose changes trigger a reload.
	Extension string
	// Debounce is the quiet period before a reload fires.
	Debounce time.Duration
}

// Watcher watches a directory tree and calls a reload function after
// changes settle.
type Watcher struct {
	cfg     Config
	watcher *fsnotify.Watcher
}

// New creates a watcher over cfg.Path. The directory tree is registered
// immediately, so events that happen after New returns are not lost.
func New(cfg Config) (*Watcher, error) {
	if cfg.Extension == "" {
		cfg.Extension = ".hcl"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &Watcher{cfg: cfg, watcher: fsw}
	if err := w.addTree(cfg.Path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", cfg.Path, err)
	}
	return w, nil
}

// Watch processes events until ctx is done, calling onReload after every
// settled burst of relevant changes. Reload errors are logged and watching
// continues. The underlying watcher is closed on return.
func (w *Watcher) Watch(ctx context.Context, onReload func(ctx context.Context) error) error {
	logger := ctxlog.FromContext(ctx)
	defer w.watcher.Close()

	debounce := NewDebouncer(w.cfg.Debounce)
	defer debounce.Stop()

	logger.Info("Manifest watcher started.", "path", w.cfg.Path, "debounce", w.cfg.Debounce)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Manifest watcher stopped.")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) {
				w.maybeAddDir(logger, event.Name)
			}
			if !w.relevant(event) {
				continue
			}

			logger.Debug("Manifest change detected.", "path", event.Name, "op", event.Op.String())
			debounce.Trigger(func() {
				logger.Info("Reloading plugin manifests.", "path", event.Name)
				if err := onReload(ctx); err != nil {
					logger.Error("Manifest reload failed; keeping the previous plugins.", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Manifest watcher error.", "error", err)
		}
	}
}

// relevant reports whether event should trigger a reload.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), w.cfg.Extension)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// maybeAddDir starts watching a directory created after the watcher started.
func (w *Watcher) maybeAddDir(logger *slog.Logger, path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	if err := w.addTree(path); err != nil {
		logger.Debug("Could not watch new path.", "path", path, "error", err)
	}
}
