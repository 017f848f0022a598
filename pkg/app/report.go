package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"tableflip.dev/thrivesense/pkg/timeutil"
)

// EmotionCount is how often an emotion was named.
type EmotionCount struct {
	Emotion string
	Count   int
}

// Report summarizes the entries inside a window.
type Report struct {
	Since   time.Time
	Until   time.Time
	Entries int

	AverageMood   float64
	AverageSleep  float64
	AverageStress float64
	LowestMood    float64
	HighestMood   float64

	// TopEmotions is ordered by count, then name.
	TopEmotions []EmotionCount
}

// maxTopEmotions bounds Report.TopEmotions.
const maxTopEmotions = 5

// Report summarizes the logged in account's entries inside w.
func (s *Service) Report(ctx context.Context, w timeutil.Window) (Report, error) {
	entries, err := s.Entries(ctx, w)
	if err != nil {
		return Report{}, err
	}
	now := s.now()
	r := Report{Since: w.Start(now), Until: now, Entries: len(entries)}
	if len(entries) == 0 {
		return r, nil
	}

	counts := make(map[string]int)
	r.LowestMood, r.HighestMood = entries[0].Analysis.MoodScore, entries[0].Analysis.MoodScore
	for _, e := range entries {
		score := e.Analysis.MoodScore
		r.AverageMood += score
		r.AverageSleep += e.SleepHours
		r.AverageStress += float64(e.StressLevel)
		r.LowestMood = min(r.LowestMood, score)
		r.HighestMood = max(r.HighestMood, score)
		for _, em := range e.Analysis.KeyEmotions {
			if em = strings.ToLower(strings.TrimSpace(em)); em != "" {
				counts[em]++
			}
		}
	}
	n := float64(len(entries))
	r.AverageMood /= n
	r.AverageSleep /= n
	r.AverageStress /= n

	for em, c := range counts {
		r.TopEmotions = append(r.TopEmotions, EmotionCount{Emotion: em, Count: c})
	}
	sort.Slice(r.TopEmotions, func(i, j int) bool {
		if r.TopEmotions[i].Count != r.TopEmotions[j].Count {
			return r.TopEmotions[i].Count > r.TopEmotions[j].Count
		}
		return r.TopEmotions[i].Emotion < r.TopEmotions[j].Emotion
	})
	if len(r.TopEmotions) > maxTopEmotions {
		r.TopEmotions = r.TopEmotions[:maxTopEmotions]
	}
	return r, nil
}
