// Package watch reruns a conversion whenever its input file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mcncl/gotoon/internal/errors"
)

const writeOrCreateMask = fsnotify.Write | fsnotify.Create

// Watcher reports changes to a single file
type Watcher struct {
	file     string
	realFile string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
}

// New starts watching path. The parent directory is watched so that
// atomic saves and renames are picked up.
func New(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewWatchError("failed to create file watcher", err)
	}

	file := filepath.Clean(path)
	dir, _ := filepath.Split(file)
	if dir == "" {
		dir = "."
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, errors.NewWatchError("failed to watch directory '"+dir+"'", err)
	}

	realFile, _ := filepath.EvalSymlinks(file)
	return &Watcher{file: file, realFile: realFile, watcher: fw, logger: logger}, nil
}

// Run calls onChange after every write to the file, or when the path starts
// pointing at a different file. It returns nil when ctx is done or the file
// is removed. Errors from onChange are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			name := filepath.Clean(event.Name)
			currentFile, _ := filepath.EvalSymlinks(w.file)

			switch {
			case (name == w.file && event.Op&writeOrCreateMask != 0) ||
				(currentFile != "" && currentFile != w.realFile):
				w.realFile = currentFile
				w.logger.Info("input changed, rebuilding", "file", w.file, "op", event.Op.String())
				if err := onChange(); err != nil {
					w.logger.Error("conversion failed", "file", w.file, "error", err)
				}
			case name == w.file && event.Op&fsnotify.Remove != 0:
				w.logger.Info("input removed, stopping watch", "file", w.file)
				return nil
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return errors.NewWatchError("file watcher failed", err)
		}
	}
}

// Close stops the watcher without running it
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
