package login

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/prompt"
)

type Login struct {
	App      *app.Service
	Email    string
	Password string

	// Prompter, when set, asks for a missing email and password.
	Prompter *prompt.Prompter
	Out      io.Writer
}

func (n *Login) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	if p := n.Prompter; p != nil {
		var err error
		if n.Email == "" {
			if n.Email, err = p.Email(""); err != nil {
				return err
			}
		}
		if n.Password == "" {
			if n.Password, err = p.Password(); err != nil {
				return err
			}
		}
	}
	a, err := n.App.Login(ctx, n.Email, n.Password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Welcome back, %s!\n", a.Username)
	return nil
}
