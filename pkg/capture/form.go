// Package capture implements the entry form: it collects text, speech
// segments, an optional photo and the sleep/stress metrics, runs the
// analysis and appends the resulting entry to the journal.
package capture

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/imagedata"
	"tableflip.dev/thrivesense/pkg/speech"
)

const (
	DefaultSleepHours  = 8
	DefaultStressLevel = 5

	MinSleepHours  = 0
	MaxSleepHours  = 12
	MinStressLevel = 1
	MaxStressLevel = 10
)

var (
	// ErrValidation is returned when a submit has neither text nor photo.
	ErrValidation = errors.New("please add a journal entry or upload a photo to continue")

	// ErrBusy is returned by Submit while a previous submit is pending.
	ErrBusy = errors.New("an entry is already being analyzed")

	// ErrOutOfRange is returned by the metric setters.
	ErrOutOfRange = errors.New("value out of range")
)

// State is the form's position in its lifecycle.
type State int

const (
	Idle State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Journal is where successful entries go.
type Journal interface {
	Append(ctx context.Context, accountID string, e *entry.Entry) error
}

// Form is the entry capture flow for one account. It is safe for
// concurrent use; speech segments may arrive while the user edits.
type Form struct {
	accountID string
	analyzer  analysis.Analyzer
	journal   Journal
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
	onChange  func(Snapshot)

	mu         sync.Mutex
	state      State
	text       string
	sleepHours float64
	stress     int
	image      string
	recognizer speech.Recognizer
	recording  bool
	lastErr    error
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the form's logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// WithIDs replaces the entry id generator.
func WithIDs(newID func() string) Option {
	return func(f *Form) { f.newID = newID }
}

// WithOnChange registers fn to be called after speech capture changes the
// form. fn runs on the recognizer's goroutine.
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *Form) { f.onChange = fn }
}

// New creates an empty form with default metrics.
func New(accountID string, a analysis.Analyzer, j Journal, opts ...Option) *Form {
	f := &Form{
		accountID:  accountID,
		analyzer:   a,
		journal:    j,
		log:        zap.NewNop(),
		now:        time.Now,
		newID:      uuid.NewString,
		sleepHours: DefaultSleepHours,
		stress:     DefaultStressLevel,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot is a copy of the visible form state.
type Snapshot struct {
	State       State
	Text        string
	SleepHours  float64
	StressLevel int
	Image       string
	Recording   bool
	Err         error
}

// CanSubmit mirrors the submit button: enabled when not pending and there
// is text or a photo.
func (s Snapshot) CanSubmit() bool {
	return s.State != Submitting && (strings.TrimSpace(s.Text) != "" || s.Image != "")
}

// Snapshot returns the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:       f.state,
		Text:        f.text,
		SleepHours:  f.sleepHours,
		StressLevel: f.stress,
		Image:       f.image,
		Recording:   f.recording,
		Err:         f.lastErr,
	}
}

// edited moves an idle form to Editing. Callers hold mu.
func (f *Form) edited() {
	if f.state == Idle {
		f.state = Editing
	}
}

// SetText replaces the text buffer.
func (f *Form) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.edited()
}

// AppendSegment adds a finalized speech segment to the text buffer.
func (f *Form) AppendSegment(segment string) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if trimmed := strings.TrimSpace(f.text); trimmed != "" {
		f.text = trimmed + " " + segment + ". "
	} else {
		f.text = segment + ". "
	}
	f.edited()
}

// SetSleepHours accepts 0 to 12 hours in half hour steps.
func (f *Form) SetSleepHours(h float64) error {
	if h < MinSleepHours || h > MaxSleepHours || math.Mod(h*2, 1) != 0 {
		return fmt.Errorf("sleep hours %v: %w (0-12 in 0.5 steps)", h, ErrOutOfRange)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sleepHours = h
	f.edited()
	return nil
}

// SetStressLevel accepts 1 to 10.
func (f *Form) SetStressLevel(n int) error {
	if n < MinStressLevel || n > MaxStressLevel {
		return fmt.Errorf("stress level %d: %w (1-10)", n, ErrOutOfRange)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stress = n
	f.edited()
	return nil
}

// AttachImage stores a photo as a data URI. The URI is only decoded on
// submit.
func (f *Form) AttachImage(dataURI string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.image = dataURI
	f.edited()
}

// AttachImageFile reads a PNG or JPEG from disk and attaches it.
func (f *Form) AttachImageFile(path string) error {
	img, err := imagedata.Load(path)
	if err != nil {
		f.mu.Lock()
		f.lastErr = err
		f.mu.Unlock()
		return err
	}
	f.AttachImage(img.DataURI())
	return nil
}

// ClearImage removes the attached photo.
func (f *Form) ClearImage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.image = ""
	f.edited()
}

// StartRecording begins appending segments from r to the text buffer.
func (f *Form) StartRecording(ctx context.Context, r speech.Recognizer) error {
	if r == nil {
		return speech.ErrUnavailable
	}
	f.mu.Lock()
	if f.recording {
		f.mu.Unlock()
		return speech.ErrAlreadyStarted
	}
	f.recording = true
	f.recognizer = r
	f.edited()
	f.mu.Unlock()

	if err := r.Start(ctx, f); err != nil {
		f.mu.Lock()
		f.recording = false
		f.recognizer = nil
		f.mu.Unlock()
		return err
	}
	f.log.Debug("recording started")
	return nil
}

// StopRecording stops the active recognizer, if any.
func (f *Form) StopRecording() error {
	f.mu.Lock()
	r := f.recognizer
	f.mu.Unlock()
	if r == nil {
		return nil
	}
	// Stop waits for OnEnd, which takes mu.
	return r.Stop()
}

// Recording reports whether speech capture is active.
func (f *Form) Recording() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recording
}

// OnSegment implements speech.Handler.
func (f *Form) OnSegment(text string) {
	f.AppendSegment(text)
	f.changed()
}

// OnEnd implements speech.Handler.
func (f *Form) OnEnd(err error) {
	f.mu.Lock()
	f.recording = false
	f.recognizer = nil
	f.mu.Unlock()
	if err != nil {
		f.log.Warn("speech recognition error", zap.Error(err))
	}
	f.changed()
}

func (f *Form) changed() {
	if f.onChange != nil {
		f.onChange(f.Snapshot())
	}
}

// Submit validates the form, runs the analysis and appends the new entry.
// On success the form resets to its defaults; on failure the input is kept
// so the user can retry.
func (f *Form) Submit(ctx context.Context) (*entry.Entry, error) {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	text, image := f.text, f.image
	sleep, stress := f.sleepHours, f.stress
	hasText := strings.TrimSpace(text) != ""
	if !hasText && image == "" {
		f.lastErr = ErrValidation
		f.mu.Unlock()
		return nil, ErrValidation
	}
	f.state = Submitting
	f.lastErr = nil
	f.mu.Unlock()

	e, err := f.submit(ctx, text, image, sleep, stress)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = Editing
		f.lastErr = err
		return nil, err
	}
	f.reset(text)
	return e, nil
}

func (f *Form) submit(ctx context.Context, text, image string, sleep float64, stress int) (*entry.Entry, error) {
	req := analysis.Request{Text: text, SleepHours: sleep, StressLevel: stress}

	if image != "" {
		img, err := imagedata.Parse(image)
		switch {
		case err == nil:
			req.Image = img
		case strings.TrimSpace(text) == "":
			return nil, err
		default:
			f.log.Warn("attached image is malformed, analyzing text only", zap.Error(err))
			image = ""
		}
	}

	result, err := f.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %w: no result", analysis.ErrAnalysisFailed, analysis.ErrMalformedResponse)
	}

	e := entry.New(f.newID(), f.now(), text, *result, sleep, stress)
	e.FacialImage = image
	if err := f.journal.Append(ctx, f.accountID, e); err != nil {
		return nil, err
	}
	f.log.Info("entry saved",
		zap.String("id", e.ID),
		zap.String("mood", result.OverallMood),
		zap.Float64("score", result.MoodScore))
	return e, nil
}

// reset restores the defaults after a successful submit. Speech segments
// that arrived while the entry was being analyzed are kept. Callers hold mu.
func (f *Form) reset(submitted string) {
	if rest, ok := strings.CutPrefix(f.text, submitted); ok {
		f.text = strings.TrimSpace(rest)
	} else {
		f.text = ""
	}
	f.sleepHours = DefaultSleepHours
	f.stress = DefaultStressLevel
	f.image = ""
	f.lastErr = nil
	if f.text == "" {
		f.state = Idle
	} else {
		f.state = Editing
	}
}
