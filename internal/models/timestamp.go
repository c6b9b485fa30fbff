package models

import (
	"bytes"
	"fmt"
	"time"
)

const floatingLayout = "2006-01-02T15:04:05"

// Timestamp accepts the layouts the agenda backend emits. Values without an
// offset are "floating" wall-clock times and are written back the same way,
// so the calendar renders them in the shop's local time.
type Timestamp struct {
	time.Time
	floating bool
}

func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Floating builds a wall-clock timestamp with no offset.
func Floating(year int, month time.Month, day, hour, min int) Timestamp {
	return Timestamp{Time: time.Date(year, month, day, hour, min, 0, 0, time.UTC), floating: true}
}

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999",
		floatingLayout,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t, floating: true}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*t = Timestamp{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("timestamp must be a string, got %s", b)
	}
	parsed, err := ParseTimestamp(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

func (t Timestamp) String() string {
	if t.floating {
		return t.Format(floatingLayout)
	}
	return t.Format(time.RFC3339)
}

// Clock returns the HH:MM part of the timestamp.
func (t Timestamp) Clock() string {
	return t.Format("15:04")
}
