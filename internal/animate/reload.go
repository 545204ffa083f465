package animate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/internal/scenefile"
)

// Reloader replaces an Animator's scene whenever its file changes on disk.
// A scene that fails to load is logged and the previous one is kept.
type Reloader struct {
	a       *Animator
	path    string
	watcher *fsnotify.Watcher

	// loaded, if set, is called after every reload attempt.
	loaded func(*scenefile.Scene, error)
}

// NewReloader starts watching path. The directory is watched rather than
// the file so editors that save by renaming are still seen.
func NewReloader(a *Animator, path string) (*Reloader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("animate: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("animate: watch %s: %w", path, err)
	}
	return &Reloader{a: a, path: abs, watcher: w}, nil
}

// Run handles file events until ctx is done or the watcher fails.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.reload()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			sketch.Logger().Warn("animate: watcher error", slog.Any("error", err))
		}
	}
}

func (r *Reloader) reload() {
	s, err := scenefile.Load(r.path)
	if err != nil {
		sketch.Logger().Warn("animate: reload failed, keeping previous scene",
			slog.String("path", r.path), slog.Any("error", err))
	} else {
		r.a.Replace(s)
	}
	if r.loaded != nil {
		r.loaded(s, err)
	}
}
