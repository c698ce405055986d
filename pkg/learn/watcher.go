package learn

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch broadcasts a reload event on the hub whenever a file in dir changes.
// blocks until ctx is canceled. a missing directory is not an error: the
// platform may not exist yet, and the embedded fallback page needs no reload.
func Watch(ctx context.Context, dir string, hub *Hub) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		// nothing to watch, keep the server running with static content
		return nil //nolint:nilerr // missing platform dir is a normal state
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-watcher.Events:
			if !open {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				hub.Broadcast(NewReloadEvent(ev.Name))
			}
		case err, open := <-watcher.Errors:
			if !open {
				return nil
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}
