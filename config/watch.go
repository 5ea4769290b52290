package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/glyphgrid/parameter"
)

// Watch reloads path after writes and calls fn with the result until ctx is done
// The parent directory is watched so editors that replace the file are followed
// Bursts of events within parameter.WatchDebounce collapse into one reload
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(parameter.WatchDebounce)
			} else {
				timer.Reset(parameter.WatchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, err)
		case <-fire:
			fire = nil
			fn(Load(target))
		}
	}
}
