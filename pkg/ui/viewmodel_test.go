package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/thrivesense/pkg/capture"
	"tableflip.dev/thrivesense/pkg/entry"
)

func entries(scores ...float64) []*entry.Entry {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	out := make([]*entry.Entry, len(scores))
	for i, s := range scores {
		out[len(scores)-1-i] = entry.New("id", start.AddDate(0, 0, i), "text", entry.Analysis{
			OverallMood:        "Mood",
			MoodScore:          s,
			KeyEmotions:        []string{"one"},
			Feedback:           "fb",
			ActivitySuggestion: "sg",
		}, 8, 5)
	}
	return out
}

var idle = capture.Snapshot{SleepHours: 8, StressLevel: 5}

func TestViewEmptyJournal(t *testing.T) {
	v := buildView("Ana", nil, -1, idle)
	assert.Equal(t, "Thrivesense: Ana", v.Title)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "Need at least two entries to display mood trend.", v.Chart)
	assert.Contains(t, v.Detail, "journal is empty")
	assert.Empty(t, v.Tooltip)
}

func TestViewSingleEntryHasNoTrend(t *testing.T) {
	v := buildView("Ana", entries(7), 0, idle)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Need at least two entries to display mood trend.", v.Chart)
	assert.Contains(t, v.Detail, "AI Mood: Mood (7/10)")
}

func TestViewSelectionDrivesTooltip(t *testing.T) {
	es := entries(2, 9, 5)
	// Row 0 is the newest entry, the last trend point.
	v := buildView("Ana", es, 0, idle)
	assert.Equal(t, "Score: 5 / 10  Mar 3, 2024", v.Tooltip)
	assert.Equal(t, []string{"fair", "good", "low"}, v.Styles)
	assert.True(t, strings.HasPrefix(v.Rows[0], "Mar 3, 2024"))

	v = buildView("Ana", es, 2, idle)
	assert.Equal(t, "Score: 2 / 10  Mar 1, 2024", v.Tooltip)
	assert.Contains(t, v.Chart, "◉")
}

func TestPointFor(t *testing.T) {
	assert.Equal(t, 2, pointFor(0, 3))
	assert.Equal(t, 0, pointFor(2, 3))
	assert.Equal(t, -1, pointFor(-1, 3))
	assert.Equal(t, -1, pointFor(3, 3))
}

func TestFormStatus(t *testing.T) {
	assert.Equal(t, "Sleep 8 hrs  |  Stress 5/10", formStatus(idle))
	assert.Equal(t, "Sleep 7.5 hrs  |  Stress 3/10  |  photo attached  |  listening...  |  Analyzing...",
		formStatus(capture.Snapshot{SleepHours: 7.5, StressLevel: 3, Image: "data:", Recording: true, State: capture.Submitting}))
	assert.Equal(t, "Sleep 8 hrs  |  Stress 5/10  |  Error: Please add a journal entry or upload a photo to continue.",
		formStatus(capture.Snapshot{SleepHours: 8, StressLevel: 5, Err: capture.ErrValidation}))
	assert.Equal(t, "Error: Boom.", "Error: "+sentence(errors.New("boom").Error()))
}

func TestDetailQuotesTextVerbatim(t *testing.T) {
	es := entries(6)
	es[0].TranscribedText = "Line one\nShe said \"fine\""
	v := buildView("Ana", es, 0, idle)
	assert.Contains(t, v.Detail, "\"Line one\nShe said \"fine\"\"")
	assert.NotContains(t, v.Detail, `\"`)
}
