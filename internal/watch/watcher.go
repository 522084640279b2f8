// Package watch streams filesystem change events from the serving root.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventCallback receives one notification per file change. kind is one of
// "created", "updated", "deleted"; path is root-relative with forward
// slashes.
type EventCallback func(kind string, path string)

// Watch runs an fsnotify watcher over root until ctx is cancelled. Every
// directory under root is watched, dot-directories excepted; directories
// created at runtime join the watch list. Watcher errors are logged, not
// fatal.
func Watch(ctx context.Context, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories join the watch list. Files already inside
			// were written before the watch attached, so they are
			// reported here instead of by their own events.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if hidden(filepath.Base(ev.Name)) {
						continue
					}
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", ev.Name))
					}
					reportNewDir(root, ev.Name, cb)
					continue
				}
			}

			rel, relErr := relPath(root, ev.Name)
			if relErr != nil {
				continue
			}

			var kind string
			switch {
			case ev.Op&fsnotify.Create != 0:
				kind = "created"
			case ev.Op&fsnotify.Write != 0:
				kind = "updated"
			default:
				// Remove, or Rename of the old path. A rename target
				// inside the root arrives as its own Create event.
				kind = "deleted"
			}
			logger.Debug("watcher: event", slog.String("path", rel), slog.String("op", kind))
			if cb != nil {
				cb(kind, rel)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reportNewDir announces a directory created at runtime along with
// everything it already contains.
func reportNewDir(root, dir string, cb EventCallback) {
	if cb == nil {
		return
	}
	if rel, err := relPath(root, dir); err == nil {
		cb("created", rel)
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if d.IsDir() && hidden(d.Name()) {
			return filepath.SkipDir
		}
		if rel, relErr := relPath(root, path); relErr == nil {
			cb("created", rel)
		}
		return nil
	})
}

// addDirsRecursive adds dir and all its subdirectories to the watcher,
// skipping dot-directories like .git.
func addDirsRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && hidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func relPath(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
