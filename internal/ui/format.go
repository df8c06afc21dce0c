package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

// statusSymbol is the one-character marker of a status in lists and lanes.
func statusSymbol(s schedule.Status) string {
	switch s {
	case schedule.StatusOrderCreated:
		return "■"
	case schedule.StatusIdle:
		return "○"
	case schedule.StatusSetup:
		return "⚙"
	case schedule.StatusTesting:
		return "◐"
	case schedule.StatusStopped:
		return "✗"
	default:
		return "?"
	}
}

// formatRange renders [start, end), omitting the end date when it matches.
func formatRange(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s %s-%s", start.Format("2006-01-02"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}

// formatEditable lists the allowed mutations, e.g. "time,machine".
func formatEditable(e schedule.Editable) string {
	var parts []string
	if e.UpdateTime {
		parts = append(parts, "time")
	}
	if e.UpdateGroup {
		parts = append(parts, "machine")
	}
	if e.Remove {
		parts = append(parts, "remove")
	}
	if len(parts) == 0 {
		return "locked"
	}
	return strings.Join(parts, ",")
}

// describeItem is the detail part of a list line.
func describeItem(it schedule.Item) string {
	switch {
	case it.Order != nil:
		o := it.Order
		desc := o.ProductName
		if desc == "" {
			desc = o.ProductID
		}
		if o.Quantity > 0 {
			desc = fmt.Sprintf("%s %d/%d", desc, o.CompletedQty, o.Quantity)
		}
		return strings.TrimSpace(desc)
	case it.Machine != nil:
		return strings.TrimSpace(strings.Join(nonEmpty(it.Machine.Reason, it.Machine.Product), " "))
	default:
		return ""
	}
}

// formatItemLine renders one list line.
func formatItemLine(it schedule.Item) string {
	line := fmt.Sprintf("  %s %-36s %-13s %s",
		statusColor(it.Status).Sprint(statusSymbol(it.Status)),
		it.ID,
		string(it.Status),
		formatRange(it.Start, it.End),
	)
	if d := describeItem(it); d != "" {
		line += " " + d
	}
	return line + " " + formatMuted("["+formatEditable(it.Editable)+"]")
}

// rejectedError carries a board error with an operator-facing message.
type rejectedError struct {
	err error
}

func (e *rejectedError) Error() string { return explain(e.err) }

func (e *rejectedError) Unwrap() error { return e.err }

func rejected(err error) error {
	if err == nil {
		return nil
	}
	return &rejectedError{err: err}
}

// explain turns a rejected intent into a message for the operator.
func explain(err error) string {
	var (
		verrs schedule.ValidationErrors
		terr  *schedule.StatusTransitionError
		oerr  *schedule.OverlapError
		perr  *schedule.PersistenceError
	)
	switch {
	case errors.As(err, &perr):
		return fmt.Sprintf("could not save: %v (nothing was changed, try again)", perr.Err)
	case errors.As(err, &verrs):
		lines := make([]string, 0, len(verrs)+1)
		lines = append(lines, "invalid item:")
		for _, v := range verrs {
			lines = append(lines, fmt.Sprintf("  %s: %s", v.Field, v.Message))
		}
		return strings.Join(lines, "\n")
	case errors.As(err, &terr):
		allowed := schedule.AllowedTargets(terr.From)
		if len(allowed) == 0 {
			return fmt.Sprintf("%s items cannot be switched manually", terr.From)
		}
		names := make([]string, len(allowed))
		for i, s := range allowed {
			names[i] = string(s)
		}
		return fmt.Sprintf("cannot switch %s to %s (allowed: %s)", terr.From, terr.To, strings.Join(names, ", "))
	case errors.As(err, &oerr):
		return fmt.Sprintf("overlaps with %s on machine %s", oerr.Conflict, oerr.Group)
	default:
		return err.Error()
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
