// Package chart turns a journal into a mood trend: points in a fixed
// 500x200 frame, hover hit-testing, and terminal and PNG renderings.
package chart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tableflip.dev/thrivesense/pkg/entry"
)

// ErrNotEnoughData is returned for journals with fewer than two entries.
var ErrNotEnoughData = errors.New("need at least two entries to display mood trend")

const (
	Width  = 500
	Height = 200

	MarginTop    = 20
	MarginRight  = 20
	MarginBottom = 30
	MarginLeft   = 30

	InnerWidth  = Width - MarginLeft - MarginRight
	InnerHeight = Height - MarginTop - MarginBottom

	MinScore = 1
	MaxScore = 10

	// HitRadius is how close a pointer must be to a point to select it.
	HitRadius = 10
)

// Ticks are the y-axis ticks and grid lines.
var Ticks = []float64{1, 5, 10}

// Point is one entry on the trend, in frame coordinates.
type Point struct {
	Date  time.Time
	Score float64
	X, Y  float64
}

// Trend is the chronological mood series of a journal.
type Trend struct {
	Points []Point
}

// New builds a trend from entries ordered newest first.
func New(entries []*entry.Entry) (*Trend, error) {
	if len(entries) < 2 {
		return nil, ErrNotEnoughData
	}
	n := len(entries)
	t := &Trend{Points: make([]Point, n)}
	for i := range entries {
		e := entries[n-1-i]
		t.Points[i] = Point{
			Date:  e.Date.Time,
			Score: e.Analysis.MoodScore,
			X:     XScale(i, n),
			Y:     YScale(e.Analysis.MoodScore),
		}
	}
	return t, nil
}

// XScale places point i of n across the inner frame.
func XScale(i, n int) float64 {
	return float64(i) / float64(n-1) * InnerWidth
}

// YScale maps a score to the inner frame, 10 at the top.
func YScale(score float64) float64 {
	return InnerHeight - (score-MinScore)/(MaxScore-MinScore)*InnerHeight
}

// Hit returns the index of the point under (x, y), given in the full
// 500x200 frame. When hover targets overlap the nearest point wins.
func (t *Trend) Hit(x, y float64) (int, bool) {
	x -= MarginLeft
	y -= MarginTop
	best, bestDist := -1, math.Inf(1)
	for i, p := range t.Points {
		d := math.Hypot(p.X-x, p.Y-y)
		if d <= HitRadius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Tooltip is the text shown for a selected point.
func Tooltip(p Point) (string, string) {
	return fmt.Sprintf("Score: %s / 10", entry.FormatScore(p.Score)), p.Date.Local().Format(entry.LayoutShort)
}

// Label is an x-axis label.
type Label struct {
	Index int
	X     float64
	Text  string
}

// Labels returns the x-axis labels: the first and last point, and the
// middle one when there are more than five.
func (t *Trend) Labels() []Label {
	n := len(t.Points)
	var labels []Label
	for i, p := range t.Points {
		if i == 0 || i == n-1 || (n > 5 && i == n/2) {
			labels = append(labels, Label{Index: i, X: p.X, Text: p.Date.Local().Format("Jan 2")})
		}
	}
	return labels
}

// Scores returns the scores oldest first.
func (t *Trend) Scores() []float64 {
	s := make([]float64, len(t.Points))
	for i, p := range t.Points {
		s[i] = p.Score
	}
	return s
}
