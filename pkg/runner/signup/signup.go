package signup

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/prompt"
)

type Signup struct {
	App     *app.Service
	Request app.SignupRequest

	// Prompter, when set, asks for anything missing from Request.
	Prompter *prompt.Prompter
	Out      io.Writer
}

func (n *Signup) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	if err := n.fill(); err != nil {
		return err
	}
	a, err := n.App.Signup(ctx, n.Request)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Welcome, %s! You are logged in as %s.\n", a.Username, a.Email)
	return nil
}

func (n *Signup) fill() error {
	p := n.Prompter
	if p == nil {
		return nil
	}
	var err error
	if n.Request.Username == "" {
		if n.Request.Username, err = p.String("Username", ""); err != nil {
			return err
		}
	}
	if n.Request.Email == "" {
		if n.Request.Email, err = p.Email(""); err != nil {
			return err
		}
	}
	if n.Request.Password == "" {
		if n.Request.Password, err = p.Password(); err != nil {
			return err
		}
	}
	if n.Request.ProfilePicture == "" {
		if n.Request.ProfilePicture, err = p.Optional("Profile picture file"); err != nil {
			return err
		}
	}
	return nil
}
