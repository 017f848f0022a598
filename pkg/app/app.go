// Package app holds the application state handed to every surface: the
// session read once at startup, and the account and journal operations
// that change it.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/account"
	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/capture"
	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/imagedata"
	"tableflip.dev/thrivesense/pkg/store"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

// ErrNotLoggedIn is returned by journal operations without a session.
var ErrNotLoggedIn = errors.New("not logged in, run 'thrive login' or 'thrive signup'")

// Credentials is the account registry.
type Credentials interface {
	Register(ctx context.Context, a *account.Account) error
	FindByEmail(ctx context.Context, email string) (*account.Account, error)
}

// Sessions holds the single active session.
type Sessions interface {
	Start(ctx context.Context, a *account.Account) error
	Current(ctx context.Context) (*account.Account, error)
	End(ctx context.Context) error
}

// Journal stores entries per account.
type Journal interface {
	List(ctx context.Context, accountID string) ([]*entry.Entry, error)
	Append(ctx context.Context, accountID string, e *entry.Entry) error
}

// Watcher is implemented by journals that can report outside changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Service is the application state. It is created once per process and
// passed to the command or dashboard that needs it.
type Service struct {
	Credentials Credentials
	Sessions    Sessions
	Journal     Journal
	Log         *zap.Logger
	Now         func() time.Time

	mu      sync.RWMutex
	current *account.Account
	loaded  bool
}

// New wires a Service to a store.
func New(st *store.Store, log *zap.Logger) *Service {
	return &Service{
		Credentials: st.Credentials(),
		Sessions:    st.Sessions(),
		Journal:     st.Journal(),
		Log:         log,
	}
}

func (s *Service) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Load reads the persisted session. Nobody being logged in is not an error.
func (s *Service) Load(ctx context.Context) (*account.Account, error) {
	a, err := s.Sessions.Current(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSession) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = a
	s.loaded = true
	return copyAccount(a), nil
}

// Session returns the logged in account, or nil.
func (s *Service) Session() *account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAccount(s.current)
}

func (s *Service) setSession(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = a
	s.loaded = true
}

func (s *Service) requireSession() (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, errors.New("app: session not loaded")
	}
	if s.current == nil {
		return nil, ErrNotLoggedIn
	}
	return s.current, nil
}

func copyAccount(a *account.Account) *account.Account {
	if a == nil {
		return nil
	}
	return a.Public()
}

// SignupRequest is the signup form.
type SignupRequest struct {
	Username string
	Email    string
	Password string
	// ProfilePicture is an optional PNG or JPEG file.
	ProfilePicture string
}

// Signup registers a new account and logs it in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*account.Account, error) {
	var picture string
	if req.ProfilePicture != "" {
		img, err := imagedata.Load(req.ProfilePicture)
		if err != nil {
			return nil, err
		}
		picture = img.Base64()
	}

	a, err := account.New(req.Username, req.Email, req.Password, picture)
	if err != nil {
		return nil, err
	}
	if err := s.Credentials.Register(ctx, a); err != nil {
		return nil, err
	}
	if err := s.Sessions.Start(ctx, a); err != nil {
		return nil, err
	}
	s.setSession(a.Public())
	s.log().Info("signed up", zap.String("email", a.Email))
	return a.Public(), nil
}

// Login starts a session for a registered account.
func (s *Service) Login(ctx context.Context, email, password string) (*account.Account, error) {
	a, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := a.CheckPassword(password); err != nil {
		return nil, err
	}
	if err := s.Sessions.Start(ctx, a); err != nil {
		return nil, err
	}
	s.setSession(a.Public())
	s.log().Info("logged in", zap.String("email", a.Email))
	return a.Public(), nil
}

// Logout ends the session. Accounts and journals are kept.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.Sessions.End(ctx); err != nil {
		return err
	}
	s.setSession(nil)
	return nil
}

// Entries lists the logged in account's entries inside w, newest first.
func (s *Service) Entries(ctx context.Context, w timeutil.Window) ([]*entry.Entry, error) {
	a, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	all, err := s.Journal.List(ctx, a.Email)
	if err != nil {
		return nil, err
	}
	if w.All() {
		return all, nil
	}
	now := s.now()
	out := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if w.Contains(e.Date.Time, now) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Find returns the entry with the given id, or an id prefix of at least
// four characters.
func (s *Service) Find(ctx context.Context, id string) (*entry.Entry, error) {
	all, err := s.Entries(ctx, timeutil.Window{})
	if err != nil {
		return nil, err
	}
	var match *entry.Entry
	for _, e := range all {
		switch {
		case e.ID == id:
			return e, nil
		case len(id) >= 4 && strings.HasPrefix(e.ID, id):
			if match != nil {
				return nil, fmt.Errorf("entry id %q is ambiguous", id)
			}
			match = e
		}
	}
	if match == nil {
		return nil, fmt.Errorf("entry %q not found", id)
	}
	return match, nil
}

// NewForm opens an entry form for the logged in account.
func (s *Service) NewForm(a analysis.Analyzer, opts ...capture.Option) (*capture.Form, error) {
	acct, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	opts = append([]capture.Option{capture.WithLogger(s.log())}, opts...)
	if s.Now != nil {
		opts = append(opts, capture.WithClock(s.Now))
	}
	return capture.New(acct.Email, a, s.Journal, opts...), nil
}

// Watch reports storage changes made by other processes.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	w, ok := s.Journal.(Watcher)
	if !ok {
		return nil, errors.New("app: journal does not support watching")
	}
	return w.Watch(ctx)
}
