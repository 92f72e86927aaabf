package template

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long Watch waits for writes to settle before reloading.
var WatchDebounce = 100 * time.Millisecond

// Reload receives the outcome of each template load performed by Watch.
type Reload func(t Template, warnings []Warning, err error)

// Watch loads the template at path, hands the result to fn, and repeats every
// time the file is written, created or renamed into place. It blocks until
// ctx is cancelled.
//
// The parent directory is watched rather than the file itself so editors that
// save by renaming a temporary file are picked up.
func Watch(ctx context.Context, path string, fn Reload) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	fn(Load(abs))

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(WatchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(Template{}, nil, fmt.Errorf("watch %s: %w", path, err))
		case <-timer.C:
			fn(Load(abs))
		}
	}
}
