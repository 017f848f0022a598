package add

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/capture"
	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/speech"
	"tableflip.dev/thrivesense/pkg/store"
	"tableflip.dev/thrivesense/pkg/timeutil"
)

func loggedIn(t *testing.T) *app.Service {
	t.Helper()
	st, err := store.Load(store.PathConfig(t.TempDir()))
	require.NoError(t, err)
	svc := app.New(st, nil)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	_, err = svc.Signup(context.Background(), app.SignupRequest{Username: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	return svc
}

func calm(got *analysis.Request) analysis.Analyzer {
	return analysis.AnalyzerFunc(func(_ context.Context, req analysis.Request) (*entry.Analysis, error) {
		*got = req
		return &entry.Analysis{
			OverallMood:        "Calm",
			MoodScore:          7,
			KeyEmotions:        []string{"content"},
			Feedback:           "Sounds like a good day.",
			ActivitySuggestion: "Keep the evening walk.",
		}, nil
	})
}

func TestAddPrintsCard(t *testing.T) {
	svc := loggedIn(t)
	var req analysis.Request
	out := &bytes.Buffer{}

	a := Add{
		App:         svc,
		Analyzer:    calm(&req),
		Text:        "walked by the river",
		SleepHours:  7.5,
		StressLevel: 3,
		Out:         out,
	}
	require.NoError(t, a.Do(context.Background()))

	assert.Equal(t, "walked by the river", req.Text)
	assert.Equal(t, 7.5, req.SleepHours)
	assert.Equal(t, 3, req.StressLevel)
	assert.Contains(t, out.String(), "AI Mood: Calm (7/10)")

	entries, err := svc.Entries(context.Background(), timeutil.Window{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAddJSON(t *testing.T) {
	svc := loggedIn(t)
	var req analysis.Request
	out := &bytes.Buffer{}

	a := Add{App: svc, Analyzer: calm(&req), Text: "fine", SleepHours: 8, StressLevel: 5, JSON: true, Out: out}
	require.NoError(t, a.Do(context.Background()))

	var e entry.Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &e))
	assert.Equal(t, "fine", e.TranscribedText)
	assert.Equal(t, 7.0, e.Analysis.MoodScore)
}

func TestAddNothingIsValidationError(t *testing.T) {
	svc := loggedIn(t)
	var req analysis.Request

	a := Add{App: svc, Analyzer: calm(&req), SleepHours: 8, StressLevel: 5, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, a.Do(context.Background()), capture.ErrValidation)
}

func TestAddRejectsOutOfRangeMetrics(t *testing.T) {
	svc := loggedIn(t)
	var req analysis.Request

	a := Add{App: svc, Analyzer: calm(&req), Text: "x", SleepHours: 13, StressLevel: 5, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, a.Do(context.Background()), capture.ErrOutOfRange)
}

func TestAddDictation(t *testing.T) {
	svc := loggedIn(t)
	var req analysis.Request
	out := &bytes.Buffer{}

	a := Add{
		App:         svc,
		Analyzer:    calm(&req),
		SleepHours:  8,
		StressLevel: 5,
		Recognizer:  speech.NewStream(strings.NewReader("long day\nfeeling better now\n")),
		Out:         out,
	}
	require.NoError(t, a.Do(context.Background()))
	assert.Equal(t, "long day. feeling better now. ", req.Text)
	assert.Contains(t, out.String(), "Listening")
}

func TestAddNeedsSession(t *testing.T) {
	st, err := store.Load(store.PathConfig(t.TempDir()))
	require.NoError(t, err)
	svc := app.New(st, nil)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)

	a := Add{App: svc, Analyzer: analysis.AnalyzerFunc(func(context.Context, analysis.Request) (*entry.Analysis, error) {
		return nil, errors.New("unreachable")
	}), Text: "x", SleepHours: 8, StressLevel: 5}
	assert.ErrorIs(t, a.Do(context.Background()), app.ErrNotLoggedIn)
}
