package fsmodel

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultCoalesce is how long change events for one directory are merged
// before a single Event is emitted.
const DefaultCoalesce = 100 * time.Millisecond

// Event reports that the listing of Dir may have changed.
type Event struct {
	Dir string
}

// Watcher emits change notifications for the directories the panes and the
// tree are showing. Watch and Unwatch are called from the UI loop only; Run
// owns the event goroutine.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan Event
	refs     map[string]int
	coalesce time.Duration
}

// NewWatcher creates a watcher with no directories registered.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsmodel: create watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		events:   make(chan Event, 64),
		refs:     make(map[string]int),
		coalesce: DefaultCoalesce,
	}, nil
}

// Events returns the channel Run delivers to. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watch adds dir to the watched set. Directories are reference counted so
// both panes can show the same one.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	if w.refs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("fsmodel: watch %s: %w", dir, err)
		}
	}
	w.refs[dir]++
	return nil
}

// Unwatch drops one reference to dir.
func (w *Watcher) Unwatch(dir string) {
	dir = filepath.Clean(dir)
	n, ok := w.refs[dir]
	if !ok {
		return
	}
	if n > 1 {
		w.refs[dir] = n - 1
		return
	}
	delete(w.refs, dir)
	if err := w.fsw.Remove(dir); err != nil {
		log.WithFields(log.Fields{"op": "unwatch", "path": dir}).WithError(err).Debug("remove watch")
	}
}

// Run forwards coalesced events until ctx is done or the underlying watcher
// fails. Events are dropped rather than blocking when the consumer lags; the
// next event for the same directory triggers the refresh anyway.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	pending := make(map[string]struct{})
	ticker := time.NewTicker(w.coalesce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("fsmodel: watcher error")
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if evt.Op == fsnotify.Chmod {
				continue
			}
			pending[filepath.Dir(evt.Name)] = struct{}{}
		case <-ticker.C:
			for dir := range pending {
				select {
				case w.events <- Event{Dir: dir}:
				default:
				}
				delete(pending, dir)
			}
		}
	}
}

// Close releases the underlying watcher; Run returns shortly after.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
