package models

import (
	"bytes"
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar date without a time component. It is always held at
// midnight UTC and encodes as "YYYY-MM-DD" in JSON.
type Day struct {
	time.Time
}

func NewDay(value time.Time) Day {
	year, month, day := value.Date()
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(raw string) (Day, error) {
	parsed, err := time.ParseInLocation(DayLayout, raw, time.UTC)
	if err != nil {
		return Day{}, err
	}
	return Day{Time: parsed}, nil
}

func (day Day) AddDays(n int) Day {
	return NewDay(day.Time.AddDate(0, 0, n))
}

func (day Day) String() string {
	if day.IsZero() {
		return ""
	}
	return day.Format(DayLayout)
}

func (day Day) MarshalJSON() ([]byte, error) {
	if day.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + day.Format(DayLayout) + `"`), nil
}

func (day *Day) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*day = Day{}
		return nil
	}
	if len(trimmed) < 2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
		return fmt.Errorf("day must be a string, got %s", trimmed)
	}

	raw := string(trimmed[1 : len(trimmed)-1])
	// Tolerate full timestamps from older producers.
	if len(raw) > len(DayLayout) {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			*day = NewDay(parsed)
			return nil
		}
	}

	parsed, err := ParseDay(raw)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", raw, err)
	}
	*day = parsed
	return nil
}
