package store

import (
	"context"
	"errors"

	"tableflip.dev/thrivesense/pkg/account"
)

// ErrNoSession is returned by Current when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Sessions keeps the single active session under the "session" key.
type Sessions struct {
	s *Store
}

// Start persists a copy of the account as the session, replacing any
// previous session.
func (ss *Sessions) Start(ctx context.Context, a *account.Account) error {
	if a == nil {
		return errors.New("store: nil account")
	}
	return ss.s.writeJSON(ctx, keySession, a.Public())
}

// Current returns the session account or ErrNoSession.
func (ss *Sessions) Current(ctx context.Context) (*account.Account, error) {
	a := &account.Account{}
	found, err := ss.s.readJSON(ctx, keySession, a)
	if err != nil {
		return nil, err
	}
	if !found || a.Email == "" {
		return nil, ErrNoSession
	}
	return a, nil
}

// End clears the session. The account stays registered.
func (ss *Sessions) End(ctx context.Context) error {
	return ss.s.erase(ctx, keySession)
}
