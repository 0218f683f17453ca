package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType classifies a change in the document root.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event is a change to a document or sidecar, identified by its
// root-relative path.
type Event struct {
	Type EventType
	Path string
}

const watchDebounce = 50 * time.Millisecond

// Watch observes the document root until ctx is cancelled, sending debounced
// events on the returned channel. New subdirectories are picked up as they
// appear. The channel is closed when watching stops.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := s.addRecursive(watcher); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan Event, 16)
	go s.watchLoop(ctx, watcher, events)
	return events, nil
}

func (s *Store) addRecursive(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != s.root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- Event) {
	defer watcher.Close()
	defer close(events)

	// Debounce bursts: editors typically fire several events per save.
	pending := make(map[string]EventType)
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		for path, typ := range pending {
			select {
			case events <- Event{Type: typ, Path: path}:
			case <-ctx.Done():
				return
			}
		}
		pending = make(map[string]EventType)
		fire = nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			rel, err := filepath.Rel(s.root, ev.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			base := filepath.Base(ev.Name)
			if strings.HasPrefix(base, ".") || strings.HasPrefix(base, tempFilePrefix) {
				continue
			}
			if s.ignored(rel) {
				continue
			}

			switch {
			case ev.Has(fsnotify.Create):
				pending[rel] = EventCreate
				// New directories must be watched too.
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			case ev.Has(fsnotify.Write):
				if pending[rel] != EventCreate {
					pending[rel] = EventModify
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				pending[rel] = EventDelete
			default:
				continue
			}

			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			flush()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}
