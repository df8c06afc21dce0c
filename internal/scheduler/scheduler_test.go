package scheduler

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestParseGranularity(t *testing.T) {
	tests := map[string]Granularity{
		"hour":   Hour,
		"DAY":    Day,
		" week ": Week,
		"month":  Month,
		"year":   Day,
		"":       Day,
	}
	for input, want := range tests {
		if got := ParseGranularity(input); got != want {
			t.Errorf("ParseGranularity(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestWindow(t *testing.T) {
	c := New(WorkStartHour)
	ref := date(2024, 8, 16, 15, 0) // Friday

	tests := []struct {
		name      string
		g         Granularity
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"hour", Hour, date(2024, 8, 16, 14, 0), date(2024, 8, 16, 16, 0)},
		{"day", Day, date(2024, 8, 16, 8, 0), date(2024, 8, 16, 23, 0)},
		{"week", Week, date(2024, 8, 12, 8, 0), date(2024, 8, 18, 23, 0)},
		{"month", Month, date(2024, 8, 1, 8, 0), date(2024, 8, 31, 23, 0)},
		{"unknown falls back to day", Granularity("fortnight"), date(2024, 8, 16, 8, 0), date(2024, 8, 16, 23, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.Window(tt.g, ref)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("end: got %v, want %v", w.End, tt.wantEnd)
			}
		})
	}
}

func TestWindow_SundayBelongsToPreviousWeek(t *testing.T) {
	c := New(WorkStartHour)
	w := c.Window(Week, date(2024, 8, 18, 10, 0))
	if !w.Start.Equal(date(2024, 8, 12, 8, 0)) {
		t.Errorf("got start %v", w.Start)
	}
}

func TestWindow_LeapFebruary(t *testing.T) {
	c := New(WorkStartHour)
	w := c.Window(Month, date(2024, 2, 10, 0, 0))
	if !w.End.Equal(date(2024, 2, 29, 23, 0)) {
		t.Errorf("got end %v", w.End)
	}
}

func TestWindow_CustomWorkStart(t *testing.T) {
	c := New(6)
	w := c.Window(Day, date(2024, 8, 16, 15, 0))
	if !w.Start.Equal(date(2024, 8, 16, 6, 0)) {
		t.Errorf("got start %v", w.Start)
	}
	if New(42).WorkStartHour() != WorkStartHour {
		t.Error("out of range hour should fall back to default")
	}
}

func TestWindow_Contains(t *testing.T) {
	w := New(WorkStartHour).Window(Day, date(2024, 8, 16, 15, 0))
	if !w.Contains(date(2024, 8, 16, 8, 0)) {
		t.Error("window should contain its start")
	}
	if w.Contains(date(2024, 8, 16, 7, 59)) {
		t.Error("window should not contain time before work start")
	}
	if w.Duration() != 15*time.Hour {
		t.Errorf("got duration %v", w.Duration())
	}
}

func TestShift(t *testing.T) {
	c := New(WorkStartHour)
	ref := date(2024, 1, 31, 15, 0)

	tests := []struct {
		g    Granularity
		n    int
		want time.Time
	}{
		{Hour, 2, date(2024, 1, 31, 17, 0)},
		{Day, -1, date(2024, 1, 30, 15, 0)},
		{Week, 1, date(2024, 2, 7, 15, 0)},
		{Month, 1, date(2024, 2, 1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(string(tt.g), func(t *testing.T) {
			if got := c.Shift(tt.g, ref, tt.n); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
