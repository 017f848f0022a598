package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/thrivesense/pkg/analysis"
	"tableflip.dev/thrivesense/pkg/app"
	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/store"
)

func init() {
	color.NoColor = true
}

func journal(t *testing.T, moods ...float64) *app.Service {
	t.Helper()
	ctx := context.Background()
	st, err := store.Load(store.PathConfig(t.TempDir()))
	require.NoError(t, err)
	svc := app.New(st, nil)
	_, err = svc.Load(ctx)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, app.SignupRequest{Username: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	for _, m := range moods {
		score := m
		a := analysis.AnalyzerFunc(func(context.Context, analysis.Request) (*entry.Analysis, error) {
			return &entry.Analysis{OverallMood: "Okay", MoodScore: score, KeyEmotions: []string{"steady"}}, nil
		})
		f, err := svc.NewForm(a)
		require.NoError(t, err)
		f.SetText("entry")
		_, err = f.Submit(ctx)
		require.NoError(t, err)
	}
	return svc
}

func TestListEmpty(t *testing.T) {
	out := &bytes.Buffer{}
	l := List{App: journal(t), Out: out}
	require.NoError(t, l.Do(context.Background()))
	assert.Contains(t, out.String(), "Your journal is empty")
}

func TestListEmptyJSONIsArray(t *testing.T) {
	out := &bytes.Buffer{}
	l := List{App: journal(t), JSON: true, Out: out}
	require.NoError(t, l.Do(context.Background()))
	assert.JSONEq(t, `[]`, out.String())
}

func TestListJSONNewestFirst(t *testing.T) {
	out := &bytes.Buffer{}
	l := List{App: journal(t, 3, 8), JSON: true, Out: out}
	require.NoError(t, l.Do(context.Background()))

	var got []entry.Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 8.0, got[0].Analysis.MoodScore)
	assert.Equal(t, 3.0, got[1].Analysis.MoodScore)
}

func TestListSummary(t *testing.T) {
	out := &bytes.Buffer{}
	l := List{App: journal(t, 4, 8), Summary: true, Out: out}
	require.NoError(t, l.Do(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Average mood:   6/10 (lowest 4, highest 8)")
	assert.Contains(t, s, "Top emotions:   steady (2)")
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 6.7, round1(6.66))
	assert.Equal(t, 6.0, round1(6.04))
}
