package speech

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// Stream recognizes one finalized segment per non-empty line of its
// source, for transcribers that print to a pipe.
type Stream struct {
	src io.Reader

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewStream reads segments from src. If src is an io.Closer it is closed
// when capture ends.
func NewStream(src io.Reader) *Stream {
	return &Stream{src: src}
}

func (s *Stream) Start(ctx context.Context, h Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.src)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	go func() {
		defer close(s.done)
		var err error
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case line, ok := <-lines:
				if !ok {
					select {
					case err = <-scanErr:
					default:
					}
					break loop
				}
				if seg := strings.TrimSpace(line); seg != "" {
					h.OnSegment(seg)
				}
			}
		}
		cancel()
		if c, ok := s.src.(io.Closer); ok {
			_ = c.Close()
		}
		if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, context.Canceled) {
			err = nil
		}
		h.OnEnd(err)
	}()
	return nil
}

// Stop ends capture and waits for OnEnd to be delivered.
func (s *Stream) Stop() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

// Done is closed after OnEnd has run.
func (s *Stream) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
