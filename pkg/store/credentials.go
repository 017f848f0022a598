package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/account"
)

var (
	// ErrDuplicateAccount is returned by Register when the email is taken.
	ErrDuplicateAccount = errors.New("an account with that email already exists")

	// ErrAccountNotFound is returned by FindByEmail on a miss.
	ErrAccountNotFound = errors.New("no account found with that email, please sign up")
)

// Credentials maps email to account under the "users" key.
type Credentials struct {
	s *Store
}

func (c *Credentials) load(ctx context.Context) (map[string]*account.Account, error) {
	users := make(map[string]*account.Account)
	if _, err := c.s.readJSON(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register persists a new account. The existing record is left untouched
// when the email is already registered.
func (c *Credentials) Register(ctx context.Context, a *account.Account) error {
	if a == nil {
		return errors.New("store: nil account")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	users, err := c.load(ctx)
	if err != nil {
		return err
	}
	email := account.NormalizeEmail(a.Email)
	if _, found := users[email]; found {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
	}
	cp := *a
	cp.Email = email
	users[email] = &cp
	if err := c.s.writeJSON(ctx, keyUsers, users); err != nil {
		return err
	}
	c.s.log.Info("registered account", zap.String("email", email))
	return nil
}

// FindByEmail looks up an account, including its password hash.
func (c *Credentials) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	users, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	a, found := users[account.NormalizeEmail(email)]
	if !found || a == nil {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// Count returns the number of registered accounts.
func (c *Credentials) Count(ctx context.Context) (int, error) {
	users, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
