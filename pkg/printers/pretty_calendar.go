package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/thrivesense/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

// MoodCalendar prints each month from the oldest entry to the newest, days
// colored by their average mood.
func (pp *PrettyPrint) MoodCalendar(entries ...*entry.Entry) {
	if len(entries) == 0 {
		return
	}
	first := entries[len(entries)-1].Date.Local()
	last := entries[0].Date.Local()
	month := time.Date(first.Year(), first.Month(), 1, 1, 0, 0, 0, time.Local)
	for !month.After(last) {
		pp.PrintMonth(month, DailyMood(month, entries...))
		month = NextMonth(month)
	}
}

// DailyMood averages mood scores per day of then's month. Days without
// entries are zero.
func DailyMood(then time.Time, entries ...*entry.Entry) []float64 {
	days := DaysIn(then)
	sum := make([]float64, days)
	count := make([]int, days)
	for _, e := range entries {
		if e.Date.InMonth(then) {
			day := e.Date.Local().Day() - 1
			sum[day] += e.Analysis.MoodScore
			count[day]++
		}
	}
	for i := range sum {
		if count[i] > 0 {
			sum[i] /= float64(count[i])
		}
	}
	return sum
}

func (pp *PrettyPrint) PrintMonth(then time.Time, mood []float64) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String() + " " + fmt.Sprint(then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%*s%s\n", mid, "", m)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	none := color.New(color.Faint, color.FgWhite)
	for i := 0; i < len(mood); i++ {
		if mood[i] == 0 {
			_, _ = none.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = moodColor(mood[i]).Add(color.Bold).Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
