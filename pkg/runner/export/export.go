package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/export"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

type Export struct {
	App      *app.Service
	Exporter *export.Exporter
	Path     string
	Window   timeutil.Window
	Out      io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	a := n.App.Session()
	if a == nil {
		return app.ErrNotLoggedIn
	}
	entries, err := n.App.Entries(ctx, n.Window)
	if err != nil {
		return err
	}
	path := n.Path
	if path == "" {
		path = export.DefaultFilename
	}
	if err := n.Exporter.WriteFile(ctx, path, export.Journal{Username: a.Username, Entries: entries}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Exported %d entries to %s\n", len(entries), path)
	return nil
}
