package add

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/capture"
	"tableflip.dev/thrivesense/pkg/printers"
	"tableflip.dev/thrivesense/pkg/speech"
)

type Add struct {
	App      *app.Service
	Analyzer analysis.Analyzer

	Text        string
	SleepHours  float64
	StressLevel int
	Photo       string

	// Recognizer, when set, is run to completion before submitting and
	// its segments are appended to Text.
	Recognizer speech.Finite

	JSON bool
	Out  io.Writer

	// Options are passed to the entry form.
	Options []capture.Option
}

func (n *Add) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	form, err := n.App.NewForm(n.Analyzer, n.Options...)
	if err != nil {
		return err
	}
	if n.Text != "" {
		form.SetText(n.Text)
	}
	if err := form.SetSleepHours(n.SleepHours); err != nil {
		return err
	}
	if err := form.SetStressLevel(n.StressLevel); err != nil {
		return err
	}
	if n.Photo != "" {
		if err := form.AttachImageFile(n.Photo); err != nil {
			return err
		}
	}

	if n.Recognizer != nil {
		if err := form.StartRecording(ctx, n.Recognizer); err != nil {
			return err
		}
		if !n.JSON {
			_, _ = fmt.Fprintln(out, "Listening... end the transcript to submit.")
		}
		select {
		case <-n.Recognizer.Done():
		case <-ctx.Done():
			_ = form.StopRecording()
			return ctx.Err()
		}
	}

	e, err := form.Submit(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Entry(e)
	return nil
}
