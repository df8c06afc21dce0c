// Package scheduler computes the visible time window of the production
// timeline for each zoom level.
package scheduler

import (
	"strings"
	"time"

	"github.com/javiermolinar/wisesched/internal/dateutil"
)

// WorkStartHour is the hour the factory floor starts its day.
const WorkStartHour = 8

// Granularity is the timeline zoom level.
type Granularity string

const (
	Hour  Granularity = "hour"
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// ParseGranularity parses a zoom level. Unknown values fall back to Day.
func ParseGranularity(s string) Granularity {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Hour, Day, Week, Month:
		return g
	default:
		return Day
	}
}

// Window is the advisory viewport handed to the timeline renderer.
// It does not filter which items are shown.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains returns true if t falls inside the window (inclusive).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Calculator computes viewports relative to a reference instant.
type Calculator struct {
	workStartHour int
}

// New creates a Calculator whose day, week and month windows open at
// workStartHour. Out of range hours fall back to WorkStartHour.
func New(workStartHour int) *Calculator {
	if workStartHour < 0 || workStartHour > 23 {
		workStartHour = WorkStartHour
	}
	return &Calculator{workStartHour: workStartHour}
}

// WorkStartHour returns the configured opening hour.
func (c *Calculator) WorkStartHour() int {
	return c.workStartHour
}

// Window returns the viewport for g around ref:
//   - hour:  ref - 1h .. ref + 1h
//   - day:   work start of ref's day .. last hour of that day
//   - week:  work start of the ISO week's Monday .. last hour of its Sunday
//   - month: work start of the month's first day .. last hour of its last day
//
// Unknown granularities are treated as day.
func (c *Calculator) Window(g Granularity, ref time.Time) Window {
	switch g {
	case Hour:
		return Window{Start: ref.Add(-time.Hour), End: ref.Add(time.Hour)}
	case Week:
		monday, sunday := dateutil.WeekRange(ref)
		return c.span(monday, sunday)
	case Month:
		first, last := dateutil.MonthRange(ref)
		return c.span(first, last)
	default:
		return c.span(ref, ref)
	}
}

// span opens at the work start of first and closes at the start of the last
// hour of last.
func (c *Calculator) span(first, last time.Time) Window {
	return Window{
		Start: time.Date(first.Year(), first.Month(), first.Day(), c.workStartHour, 0, 0, 0, first.Location()),
		End:   dateutil.TruncateToHour(dateutil.EndOfDay(last)),
	}
}

// Shift moves ref by n steps of g (negative n moves backwards). It is used to
// page the timeline to the previous or next window.
func (c *Calculator) Shift(g Granularity, ref time.Time, n int) time.Time {
	switch g {
	case Hour:
		return ref.Add(time.Duration(n) * time.Hour)
	case Week:
		return ref.AddDate(0, 0, 7*n)
	case Month:
		first, _ := dateutil.MonthRange(ref)
		return first.AddDate(0, n, 0)
	default:
		return ref.AddDate(0, 0, n)
	}
}
