// Package dateutil provides calendar boundaries and timestamp parsing.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Parsing errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidInstant    = errors.New("time must be YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC3339")
)

// instantLayouts are the timestamp shapes the backend and the CLI produce.
// Layouts without a zone are interpreted in the caller's location.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseInstant parses a backend timestamp. Empty or unrecognized input
// reports ok=false instead of an error so callers can fall back.
func ParseInstant(s string, loc *time.Location) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range instantLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseReference parses a user supplied reference instant relative to now:
//   - Empty string or "now": returns now
//   - "today", "tomorrow", "yesterday": midnight of that day
//   - Any layout accepted by ParseInstant
//
// Keywords are case-insensitive.
func ParseReference(s string, now time.Time) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "now":
		return now, nil
	case "today":
		return TruncateToDay(now), nil
	case "tomorrow":
		return TruncateToDay(now).AddDate(0, 0, 1), nil
	case "yesterday":
		return TruncateToDay(now).AddDate(0, 0, -1), nil
	}

	t, ok := ParseInstant(s, now.Location())
	if !ok {
		return time.Time{}, ErrInvalidInstant
	}
	return t, nil
}

// FormatInstant renders t the way stores and payloads persist instants.
func FormatInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last = first.AddDate(0, 1, -1)
	return first, last
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TruncateToHour returns t with minutes and below cleared.
// Unlike time.Truncate it respects t's location offset.
func TruncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return TruncateToDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
