package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/store"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

type Info struct {
	Config store.Config
	Store  *store.Store
	App    *app.Service
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", store.ConfigPathEnv, override)
	} else {
		_, _ = fmt.Fprintf(out, "%s env var not set\n", store.ConfigPathEnv)
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if f, ok := n.Config.(interface{ ConfigFile() string }); ok && f.ConfigFile() != "" {
		_, _ = fmt.Fprintln(out, "Config.file: ", f.ConfigFile())
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())

	if os.Getenv("GEMINI_API_KEY") != "" {
		_, _ = fmt.Fprintln(out, "GEMINI_API_KEY is set")
	} else {
		_, _ = fmt.Fprintln(out, "GEMINI_API_KEY is not set, entries can't be analyzed")
	}

	if n.Store == nil {
		return fmt.Errorf("failed to open the journal store")
	}
	count, err := n.Store.Credentials().Count(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Accounts: %d\n", count)

	a := n.App.Session()
	if a == nil {
		_, _ = fmt.Fprintln(out, "Session: none")
		return nil
	}
	_, _ = fmt.Fprintf(out, "Session: %s <%s>\n", a.Username, a.Email)
	entries, err := n.App.Entries(ctx, timeutil.Window{})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Entries: %d\n", len(entries))
	return nil
}
