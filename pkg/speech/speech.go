// Package speech abstracts live speech-to-text capture. A Recognizer
// streams finalized transcript segments to a Handler until it is stopped
// or its source ends.
package speech

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when no recognizer is configured.
	ErrUnavailable = errors.New("speech recognition is not available")

	// ErrAlreadyStarted is returned by Start on a running recognizer.
	ErrAlreadyStarted = errors.New("speech recognition already started")
)

// Handler receives recognizer output. OnSegment is called once per
// finalized segment, in order. OnEnd is called exactly once after the last
// segment with the error that ended capture, or nil.
type Handler interface {
	OnSegment(text string)
	OnEnd(err error)
}

// Recognizer is a cancellable background capture.
type Recognizer interface {
	// Start begins delivering segments to h. It returns without waiting
	// for the capture to finish.
	Start(ctx context.Context, h Handler) error
	// Stop ends capture. It is safe to call more than once.
	Stop() error
}

// Finite is a Recognizer whose capture can end on its own, such as a
// stream reaching EOF or a transcriber process exiting.
type Finite interface {
	Recognizer
	// Done is closed after OnEnd has been delivered.
	Done() <-chan struct{}
}

var (
	_ Finite = (*Stream)(nil)
	_ Finite = (*Command)(nil)
)
