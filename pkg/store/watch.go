package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventJournalChanged indicates the journal for Account was rewritten.
	EventJournalChanged EventType = iota

	// EventSessionChanged signals a login or logout in another process.
	EventSessionChanged

	// EventInvalidated means the change couldn't be classified and callers
	// should reload everything they show.
	EventInvalidated
)

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type    EventType
	Account string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (j *Journal) Watch(ctx context.Context) (<-chan Event, error) {
	return j.s.Watch(ctx)
}

// Watch streams change events for the whole store.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}

	for _, dir := range []string{s.basePath, filepath.Join(s.basePath, journalDir)} {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)
	throttle := newEventThrottle(100 * time.Millisecond)

	var mu sync.Mutex
	closed := false
	send := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case events <- ev:
		default:
			// Drop events if the consumer is not ready; the next refresh
			// picks up the change anyway.
		}
	}

	go func() {
		defer func() {
			throttle.Stop()
			if err := watcher.Close(); err != nil {
				s.log.Warn("watcher close", zap.Error(err))
			}
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev, ok := s.eventForPath(evt.Name); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// eventForPath maps a diskv file path back to the key that changed.
func (s *Store) eventForPath(path string) (Event, bool) {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." {
		return Event{}, false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	switch {
	case parts[0] == tempDir:
		return Event{}, false
	case len(parts) == 1 && parts[0] == keySession:
		return Event{Type: EventSessionChanged}, true
	case len(parts) == 1 && parts[0] == keyUsers:
		return Event{}, false
	case len(parts) == 2 && parts[0] == journalDir:
		return Event{Type: EventJournalChanged, Account: fromFileName(parts[1])}, true
	}
	return Event{Type: EventInvalidated}, true
}

// eventThrottle coalesces rapid change notifications so the UI can redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	for ev := range pending {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
