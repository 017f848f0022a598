package entry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryJSONFieldNames(t *testing.T) {
	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	e := New("abc", at, "Feeling okay today", Analysis{
		OverallMood:        "Content",
		MoodScore:          7,
		KeyEmotions:        []string{"calm", "hopeful"},
		Feedback:           "Nice.",
		ActivitySuggestion: "Walk.",
	}, 7, 4)

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"id", "date", "transcribedText", "analysis", "sleepHours", "stressLevel"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "facialImage")
	assert.Equal(t, "2026-10-15T09:30:00Z", raw["date"])

	analysis, ok := raw["analysis"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"overallMood", "moodScore", "keyEmotions", "feedback", "activitySuggestion"} {
		assert.Contains(t, analysis, key)
	}
}

func TestTimestampKeepsSubSecondPrecision(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 678000000, time.UTC)
	b, err := json.Marshal(Timestamp{Time: at})
	require.NoError(t, err)

	var got Timestamp
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, got.Equal(at), "got %v", got)
}

func TestTimestampEmpty(t *testing.T) {
	var got Timestamp
	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.True(t, got.IsZero())
}

func TestCloneIsDeep(t *testing.T) {
	e := &Entry{Analysis: Analysis{KeyEmotions: []string{"a", "b"}}}
	cp := e.Clone()
	cp.Analysis.KeyEmotions[0] = "z"
	assert.Equal(t, "a", e.Analysis.KeyEmotions[0])
}

func TestMood(t *testing.T) {
	e := &Entry{Analysis: Analysis{OverallMood: "Calm", MoodScore: 7}}
	assert.Equal(t, "Calm (7/10)", e.Mood())

	e.Analysis.MoodScore = 6.5
	assert.Equal(t, "Calm (6.5/10)", e.Mood())
	assert.Equal(t, "7.5", FormatHours(7.5))
}

func TestTimestampInMonth(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)}
	assert.True(t, ts.InMonth(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, ts.InMonth(time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, ts.InMonth(time.Date(2023, 3, 1, 0, 0, 0, 0, time.Local)))
}
