package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEventForPath(t *testing.T) {
	s := newTestStore(t)
	base := s.BasePath()

	tests := map[string]struct {
		path string
		want Event
		ok   bool
	}{
		"session": {
			path: filepath.Join(base, keySession),
			want: Event{Type: EventSessionChanged},
			ok:   true,
		},
		"users are ignored": {
			path: filepath.Join(base, keyUsers),
		},
		"temp files are ignored": {
			path: filepath.Join(base, tempDir, "diskv-123"),
		},
		"journal": {
			path: filepath.Join(base, journalDir, toFileName("ana@example.com")),
			want: Event{Type: EventJournalChanged, Account: "ana@example.com"},
			ok:   true,
		},
		"unknown": {
			path: filepath.Join(base, "something", "else", "entirely"),
			want: Event{Type: EventInvalidated},
			ok:   true,
		},
		"base itself": {
			path: base,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := s.eventForPath(tc.path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{}, 1)
	send := func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	}

	ev := Event{Type: EventJournalChanged, Account: "ana@example.com"}
	for i := 0; i < 5; i++ {
		th.Enqueue(ev, send)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Event{ev}, got)
}

func TestWatchEmitsSessionChanges(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.Sessions().Start(context.Background(), mustAccount(t, "Ana", "ana@example.com")))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			require.True(t, ok, "channel closed early")
			if evt.Type == EventSessionChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for session change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatchNeedsBasePath(t *testing.T) {
	_, err := (&Store{}).Watch(context.Background())
	assert.Error(t, err)
}
