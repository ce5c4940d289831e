package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/benchbook/pkg/core"
)

const debounceWindow = 50 * time.Millisecond

// Watch emits note events for changes under the notebook root. Pattern is a
// doublestar glob over store paths (e.g. "Experiments/**"); an empty
// pattern watches everything. The returned channel closes when ctx is
// cancelled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := s.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan core.Event)
	deb := newDebouncer(debounceWindow)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatcherActive(false)
		defer watcher.Close()
		defer func() {
			// Pending debounce timers must be drained before the channel
			// closes, or a late emit would send on a closed channel.
			deb.stopAndWait(5 * time.Second)
			close(events)
		}()

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return fmt.Errorf("watcher events channel closed")
				}
				s.processEvent(ctx, watcher, event, pattern, deb, events)

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return fmt.Errorf("watcher errors channel closed")
				}
				s.watchError(wErr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.watchError(err)
	}))

	return events, nil
}

func (s *Store) processEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, pattern string, deb *debouncer, events chan<- core.Event) {
	// New directories must be added to the watch set before their
	// contents start changing.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = watcher.Add(event.Name)
			return
		}
	}

	relPath, err := filepath.Rel(s.Path, event.Name)
	if err != nil {
		return
	}
	relPath = filepath.ToSlash(relPath)

	if s.shouldIgnore(relPath, pattern) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	deb.add(core.Event{
		Type:      eType,
		Path:      strings.TrimSuffix(relPath, ".md"),
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		// A timer that outlives the bounded drain would still send on the
		// closed channel; swallow that instead of crashing the host.
		defer func() { _ = recover() }()
		select {
		case events <- e:
		case <-ctx.Done():
		}
	})
}

func (s *Store) shouldIgnore(relPath, pattern string) bool {
	if filepath.Ext(relPath) != ".md" {
		return true
	}
	if strings.HasPrefix(filepath.Base(relPath), TempFilePrefix) {
		return true
	}
	for _, part := range strings.Split(relPath, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	if pattern == "" {
		return false
	}
	ok, err := doublestar.Match(pattern, relPath)
	if err != nil {
		s.watchError(fmt.Errorf("bad watch pattern %q: %w", pattern, err))
		return true
	}
	return !ok
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

func (s *Store) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != s.Path {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (s *Store) watchError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
		return
	}
	if s.config.Logger != nil {
		s.config.Logger.Error("watcher error", "error", err)
	}
}

var _ core.Watchable = (*Store)(nil)

// debouncer coalesces rapid successive events for the same path so editors
// that write in bursts produce a single event.
type debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules emit for the event, replacing any pending emit for the
// same path. The last event within the window wins.
func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := e.Path
	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.window, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		emit(e)
	})
}

// stopAndWait refuses new events and waits (bounded) for in-flight timers.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
