package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/chart"
	"tableflip.dev/thrivesense/pkg/printers"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

type Chart struct {
	App    *app.Service
	Window timeutil.Window
	// PNG, when set, also writes the trend as an image to this path.
	PNG      string
	Calendar bool
	Out      io.Writer
}

func (n *Chart) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	entries, err := n.App.Entries(ctx, n.Window)
	if err != nil {
		return err
	}

	if n.Calendar {
		pp := printers.PrettyPrint{Out: out}
		pp.MoodCalendar(entries...)
		return nil
	}

	trend, err := chart.New(entries)
	if errors.Is(err, chart.ErrNotEnoughData) {
		_, _ = fmt.Fprintln(out, chart.Placeholder())
		return nil
	} else if err != nil {
		return err
	}
	if err := trend.RenderText(out, -1); err != nil {
		return err
	}

	if n.PNG == "" {
		return nil
	}
	f, err := os.Create(n.PNG)
	if err != nil {
		return err
	}
	if err := trend.RenderPNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render %s: %w", n.PNG, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Wrote %s\n", n.PNG)
	return nil
}
