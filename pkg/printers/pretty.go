package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/thrivesense/pkg/account"
	"tableflip.dev/thrivesense/pkg/entry"
)

const textWidth = 80

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0a9f3c1e-55b2-4f7e-9d2b-6b0c7d8e9f10  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return os.Stdout
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// moodColor buckets a 1-10 score.
func moodColor(score float64) *color.Color {
	switch {
	case score >= 7:
		return color.New(color.FgGreen)
	case score >= 4:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// Entries prints one row per entry.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " Your journal is empty. Add your first entry with 'thrive add'.\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		date, mood, metrics := e.Row()
		mood = moodColor(e.Analysis.MoodScore).Sprint(mood)
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), date, mood, metrics)
		} else {
			tbl.AddRow(date, mood, metrics)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Entry prints an entry card.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	w := pp.out()
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	i := color.New(color.Italic)
	g := color.New(color.FgHiGreen)

	if pp.ShowID {
		_, _ = f.Fprintln(w, e.ID)
	}
	_, _ = b.Fprintln(w, e.Date.Local().Format(entry.LayoutLong))
	_, _ = fmt.Fprintf(w, "AI Mood: %s", moodColor(e.Analysis.MoodScore).Sprint(e.Mood()))
	_, _ = f.Fprintf(w, "  Sleep: %s hrs  Stress: %d/10\n", entry.FormatHours(e.SleepHours), e.StressLevel)
	if emotions := e.Emotions(); emotions != "" {
		_, _ = f.Fprintf(w, "Emotions: %s\n", emotions)
	}
	if e.HasImage() {
		_, _ = f.Fprintln(w, "Photo attached")
	}
	if e.TranscribedText != "" {
		_, _ = i.Fprintln(w, wordwrap.String(`"`+e.TranscribedText+`"`, textWidth))
	}
	tbl := uitable.New()
	tbl.Wrap = true
	tbl.MaxColWidth = 70
	tbl.AddRow(b.Sprint("Feedback:"), e.Analysis.Feedback)
	tbl.AddRow(g.Sprint("Suggestion:"), e.Analysis.ActivitySuggestion)
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
}

// Account prints who is logged in.
func (pp *PrettyPrint) Account(a *account.Account) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	_, _ = b.Fprint(pp.out(), a.Username)
	_, _ = f.Fprintf(pp.out(), " <%s>", a.Email)
	if a.HasProfilePicture() {
		_, _ = f.Fprint(pp.out(), " (profile picture set)")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}
