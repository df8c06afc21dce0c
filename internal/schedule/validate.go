package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Rules holds the field-level limits a draft must satisfy before it is saved.
type Rules struct {
	MinOrderDuration time.Duration
	ReasonMinLength  int // runes, STOPPED only
	ReasonMaxLength  int // runes, STOPPED only
}

// DefaultRules returns the limits used when no configuration is given.
func DefaultRules() Rules {
	return Rules{
		MinOrderDuration: 4 * time.Hour,
		ReasonMinLength:  2,
		ReasonMaxLength:  100,
	}
}

// Validate checks every field of a draft and returns ValidationErrors
// listing all problems, or nil. knownGroup may be nil to skip the machine
// lookup.
func (r Rules) Validate(it Item, knownGroup func(string) bool) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case strings.TrimSpace(it.Group) == "":
		add("group", "machine is required")
	case knownGroup != nil && !knownGroup(it.Group):
		add("group", "unknown machine %q", it.Group)
	}

	if !it.Status.Valid() {
		add("status", "unknown status %q", it.Status)
	}

	if it.Start.IsZero() {
		add("start", "start time is required")
	}
	if it.End.IsZero() {
		add("end", "end time is required")
	}
	if !it.Start.IsZero() && !it.End.IsZero() && !it.End.After(it.Start) {
		add("end", "end time must be after start time")
	}

	if it.Status.IsOrder() {
		if it.Order == nil {
			add("order", "work order details are required")
		} else if it.Order.Quantity < 0 {
			add("quantity", "quantity cannot be negative")
		}
		if d := it.End.Sub(it.Start); r.MinOrderDuration > 0 && it.End.After(it.Start) && d < r.MinOrderDuration {
			add("end", "work order must run at least %s", r.MinOrderDuration)
		}
	} else if it.Status.Valid() && it.Machine == nil {
		add("status", "status details are required")
	}

	if it.Status == StatusStopped && it.Machine != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(it.Machine.Reason))
		switch {
		case n == 0:
			add("reason", "a stop reason is required")
		case n < r.ReasonMinLength:
			add("reason", "reason must be at least %d characters", r.ReasonMinLength)
		case r.ReasonMaxLength > 0 && n > r.ReasonMaxLength:
			add("reason", "reason must be at most %d characters", r.ReasonMaxLength)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
