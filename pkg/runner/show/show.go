package show

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/printers"
)

type Show struct {
	App  *app.Service
	ID   string
	JSON bool
	Out  io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	e, err := n.App.Find(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Entry(e)
	return nil
}
