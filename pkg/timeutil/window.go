// Package timeutil parses the human friendly windows used by --since,
// such as "1w", "3d" or "2w3d".
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day = 24 * time.Hour

	// maxWindow is the largest window that can be subtracted from now.
	maxWindow = time.Duration(math.MaxInt64)
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"h":      time.Hour,
		"hr":     time.Hour,
		"hrs":    time.Hour,
		"hour":   time.Hour,
		"hours":  time.Hour,
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      7 * day,
		"wk":     7 * day,
		"wks":    7 * day,
		"week":   7 * day,
		"weeks":  7 * day,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"yr":     365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
)

// Window is a look-back period ending now. The zero Window covers all time.
type Window struct {
	Duration time.Duration
}

// All reports whether the window is unbounded.
func (w Window) All() bool {
	return w.Duration <= 0
}

// Start is the earliest instant inside the window.
func (w Window) Start(now time.Time) time.Time {
	if w.All() {
		return time.Time{}
	}
	return now.Add(-w.Duration)
}

// Contains reports whether t falls inside the window ending at now.
func (w Window) Contains(t, now time.Time) bool {
	return w.All() || !t.Before(w.Start(now))
}

// String is the compact form, "all" for the zero window.
func (w Window) String() string {
	if w.All() {
		return "all"
	}
	return Format(w.Duration)
}

// ParseWindow parses inputs like "1w", "10d" or "1w2d6h". An empty input or
// "all" yields the unbounded window.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" || remaining == "all" {
		return Window{}, nil
	}

	var total time.Duration
	for len(remaining) > 0 {
		m := segmentPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return Window{}, fmt.Errorf("unsupported window unit %q", m[2])
		}
		if n > int64(maxWindow/unit) {
			return Window{}, fmt.Errorf("window %q is too large", strings.TrimSpace(input))
		}
		segment := time.Duration(n) * unit
		if total > maxWindow-segment {
			return Window{}, fmt.Errorf("window %q is too large", strings.TrimSpace(input))
		}
		total += segment
		remaining = strings.TrimSpace(remaining[len(m[0]):])
	}
	if total <= 0 {
		return Window{}, fmt.Errorf("window must be greater than zero")
	}
	return Window{Duration: total}, nil
}

// Format renders d with week, day and hour tokens.
func Format(d time.Duration) string {
	var b strings.Builder
	for _, u := range []struct {
		label string
		value time.Duration
	}{{"w", 7 * day}, {"d", day}, {"h", time.Hour}} {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}
