package entry

import (
	"fmt"
	"strings"
	"time"
)

// Analysis is the structured feedback returned by the mood analysis service.
type Analysis struct {
	OverallMood        string   `json:"overallMood"`
	MoodScore          float64  `json:"moodScore"`
	KeyEmotions        []string `json:"keyEmotions"`
	Feedback           string   `json:"feedback"`
	ActivitySuggestion string   `json:"activitySuggestion"`
}

// Entry is one journaling submission. Entries are immutable once stored.
type Entry struct {
	ID              string    `json:"id"`
	Date            Timestamp `json:"date"`
	TranscribedText string    `json:"transcribedText"`
	Analysis        Analysis  `json:"analysis"`
	FacialImage     string    `json:"facialImage,omitempty"`
	SleepHours      float64   `json:"sleepHours"`
	StressLevel     int       `json:"stressLevel"`
}

// New builds an entry stamped with the given time.
func New(id string, at time.Time, text string, analysis Analysis, sleepHours float64, stressLevel int) *Entry {
	return &Entry{
		ID:              id,
		Date:            Timestamp{Time: at},
		TranscribedText: text,
		Analysis:        analysis,
		SleepHours:      sleepHours,
		StressLevel:     stressLevel,
	}
}

// HasImage reports whether a facial image was captured with the entry.
func (e *Entry) HasImage() bool {
	return e.FacialImage != ""
}

// Mood renders the mood label and score, "Calm (7/10)".
func (e *Entry) Mood() string {
	return fmt.Sprintf("%s (%s/10)", e.Analysis.OverallMood, FormatScore(e.Analysis.MoodScore))
}

// Emotions joins the key emotions for display.
func (e *Entry) Emotions() string {
	return strings.Join(e.Analysis.KeyEmotions, ", ")
}

// Row is the short tabular view of an entry.
func (e *Entry) Row() (string, string, string) {
	return e.Date.Local().Format(LayoutShort), e.Mood(), fmt.Sprintf("sleep %s hrs, stress %d/10", FormatHours(e.SleepHours), e.StressLevel)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", e.Date.Local().Format(LayoutLong), e.Mood())
}

// Clone returns a deep copy so callers can't mutate stored entries.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Analysis.KeyEmotions != nil {
		cp.Analysis.KeyEmotions = append([]string(nil), e.Analysis.KeyEmotions...)
	}
	return &cp
}

// FormatScore drops a trailing ".0" so whole scores print as integers.
func FormatScore(v float64) string {
	return trimFloat(v)
}

// FormatHours renders sleep hours in half hour steps, "7.5" or "8".
func FormatHours(v float64) string {
	return trimFloat(v)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
