package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/account"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/imagedata"
	"tableflip.dev/thrivesense/pkg/prompt"
	"tableflip.dev/thrivesense/pkg/runner/login"
	"tableflip.dev/thrivesense/pkg/runner/signup"
	"tableflip.dev/thrivesense/pkg/store"
)

// ErrQuit is returned when the user leaves the menu without logging in.
var ErrQuit = errors.New("quit")

// Auth shows the log in / sign up screens until there is a session.
type Auth struct {
	App      *app.Service
	Prompter *prompt.Prompter
	Out      io.Writer
}

func (n *Auth) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	for n.App.Session() == nil {
		choice, err := n.Prompter.Menu()
		if err != nil {
			return err
		}
		switch choice {
		case prompt.LogIn:
			l := login.Login{App: n.App, Prompter: n.Prompter, Out: out}
			err = l.Do(ctx)
		case prompt.SignUp:
			s := signup.Signup{App: n.App, Prompter: n.Prompter, Out: out}
			err = s.Do(ctx)
		default:
			return ErrQuit
		}
		if err != nil && !retryable(err) {
			return err
		}
		if err != nil {
			_, _ = fmt.Fprintln(out, message(err))
		}
	}
	return nil
}

// retryable errors are shown next to the form and the menu is shown again.
func retryable(err error) bool {
	return errors.Is(err, store.ErrAccountNotFound) ||
		errors.Is(err, store.ErrDuplicateAccount) ||
		errors.Is(err, account.ErrInvalidCredentials) ||
		errors.Is(err, account.ErrInvalid) ||
		errors.Is(err, imagedata.ErrUnsupported)
}

func message(err error) string {
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		return "No account found with that email. Please sign up."
	case errors.Is(err, store.ErrDuplicateAccount):
		return "An account with that email already exists. Please log in."
	}
	return err.Error()
}
