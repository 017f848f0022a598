package ui

import (
	"bytes"
	"fmt"
	"strings"

	"tableflip.dev/thrivesense/pkg/capture"
	"tableflip.dev/thrivesense/pkg/chart"
	"tableflip.dev/thrivesense/pkg/entry"
)

// view is everything the dashboard shows, computed without touching the
// terminal.
type view struct {
	Title   string
	Rows    []string
	Styles  []string
	Chart   string
	Tooltip string
	Detail  string
	Form    string
}

// pointFor maps a row (newest first) to its trend point (oldest first).
func pointFor(row, n int) int {
	if row < 0 || row >= n {
		return -1
	}
	return n - 1 - row
}

func buildView(username string, entries []*entry.Entry, selected int, form capture.Snapshot) view {
	v := view{
		Title: fmt.Sprintf("Thrivesense: %s", username),
		Form:  formStatus(form),
	}
	for _, e := range entries {
		date, mood, _ := e.Row()
		v.Rows = append(v.Rows, fmt.Sprintf("%-12s %s", date, mood))
		v.Styles = append(v.Styles, moodStyle(e.Analysis.MoodScore))
	}

	trend, err := chart.New(entries)
	if err != nil {
		v.Chart = chart.Placeholder()
	} else {
		var buf bytes.Buffer
		p := pointFor(selected, len(entries))
		_ = trend.RenderText(&buf, p)
		v.Chart = strings.TrimRight(buf.String(), "\n")
		if p >= 0 {
			score, date := chart.Tooltip(trend.Points[p])
			v.Tooltip = score + "  " + date
		}
	}

	if selected >= 0 && selected < len(entries) {
		v.Detail = detail(entries[selected])
	} else if len(entries) == 0 {
		v.Detail = "Your journal is empty. Press 'n' to write your first entry."
	}
	return v
}

// moodStyle names the theme style for a score.
func moodStyle(score float64) string {
	switch {
	case score >= 7:
		return "good"
	case score >= 4:
		return "fair"
	default:
		return "low"
	}
}

func detail(e *entry.Entry) string {
	var b strings.Builder
	fmt.Fprintln(&b, e.Date.Local().Format(entry.LayoutLong))
	fmt.Fprintf(&b, "AI Mood: %s\n", e.Mood())
	fmt.Fprintf(&b, "Sleep: %s hrs   Stress: %d/10\n", entry.FormatHours(e.SleepHours), e.StressLevel)
	if em := e.Emotions(); em != "" {
		fmt.Fprintf(&b, "Emotions: %s\n", em)
	}
	if e.HasImage() {
		fmt.Fprintln(&b, "Photo attached")
	}
	if e.TranscribedText != "" {
		fmt.Fprintf(&b, "\n\"%s\"\n", e.TranscribedText)
	}
	fmt.Fprintf(&b, "\nFeedback: %s\n", e.Analysis.Feedback)
	fmt.Fprintf(&b, "Suggestion: %s", e.Analysis.ActivitySuggestion)
	return b.String()
}

func formStatus(s capture.Snapshot) string {
	parts := []string{
		fmt.Sprintf("Sleep %s hrs", entry.FormatHours(s.SleepHours)),
		fmt.Sprintf("Stress %d/10", s.StressLevel),
	}
	if s.Image != "" {
		parts = append(parts, "photo attached")
	}
	if s.Recording {
		parts = append(parts, "listening...")
	}
	switch {
	case s.State == capture.Submitting:
		parts = append(parts, "Analyzing...")
	case s.Err != nil:
		parts = append(parts, "Error: "+sentence(s.Err.Error()))
	}
	return strings.Join(parts, "  |  ")
}

// sentence capitalizes an error message for display.
func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}
