package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/printers"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

type List struct {
	App     *app.Service
	Window  timeutil.Window
	ShowID  bool
	Summary bool
	JSON    bool
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	entries, err := n.App.Entries(ctx, n.Window)
	if err != nil {
		return err
	}

	if n.JSON {
		if entries == nil {
			entries = []*entry.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	title := "Journal"
	if !n.Window.All() {
		title = fmt.Sprintf("Journal, last %s", n.Window)
	}
	pp.TitleWithCount(title, len(entries))
	pp.Entries(entries...)

	if n.Summary && len(entries) > 0 {
		r, err := n.App.Report(ctx, n.Window)
		if err != nil {
			return err
		}
		printReport(out, r)
	}
	return nil
}

func printReport(out io.Writer, r app.Report) {
	_, _ = fmt.Fprintf(out, "Average mood:   %s/10 (lowest %s, highest %s)\n",
		entry.FormatScore(round1(r.AverageMood)), entry.FormatScore(r.LowestMood), entry.FormatScore(r.HighestMood))
	_, _ = fmt.Fprintf(out, "Average sleep:  %s hrs\n", entry.FormatHours(round1(r.AverageSleep)))
	_, _ = fmt.Fprintf(out, "Average stress: %s/10\n", entry.FormatScore(round1(r.AverageStress)))
	if len(r.TopEmotions) > 0 {
		names := make([]string, len(r.TopEmotions))
		for i, e := range r.TopEmotions {
			names[i] = fmt.Sprintf("%s (%d)", e.Emotion, e.Count)
		}
		_, _ = fmt.Fprintf(out, "Top emotions:   %s\n", strings.Join(names, ", "))
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
