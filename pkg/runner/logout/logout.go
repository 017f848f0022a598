package logout

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
)

type Logout struct {
	App *app.Service
	Out io.Writer
}

func (n *Logout) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	a := n.App.Session()
	if a == nil {
		_, _ = fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	if err := n.App.Logout(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Logged out %s.\n", a.Email)
	return nil
}
