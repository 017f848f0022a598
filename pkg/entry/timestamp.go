package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// LayoutLong is the en-US long form used on entry cards.
	LayoutLong = "January 2, 2006 at 3:04 PM"
	// LayoutShort is used in tables and chart tooltips.
	LayoutShort = "Jan 2, 2006"
)

// Timestamp is an ISO-8601 instant in JSON, always written in UTC.
type Timestamp struct {
	time.Time
}

// InMonth reports whether t falls in then's month, in local time.
func (t Timestamp) InMonth(then time.Time) bool {
	local := t.Local()
	return local.Year() == then.Year() && local.Month() == then.Month()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.UTC().Format(time.RFC3339Nano))), nil
}

// UnmarshalJSON accepts RFC 3339 with or without fractional seconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("entry: date %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
