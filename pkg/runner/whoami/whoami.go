package whoami

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/printers"
)

type Whoami struct {
	App  *app.Service
	JSON bool
	Out  io.Writer
}

func (n *Whoami) Do(_ context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	a := n.App.Session()
	if a == nil {
		return app.ErrNotLoggedIn
	}
	if n.JSON {
		return json.NewEncoder(out).Encode(a)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Account(a)
	return nil
}
