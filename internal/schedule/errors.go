package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrItemNotFound  = errors.New("schedule item not found")
	ErrUnknownGroup  = errors.New("unknown machine")
	ErrTimeLocked    = errors.New("item time can no longer be changed")
	ErrGroupLocked   = errors.New("item machine can no longer be changed")
	ErrNotRemovable  = errors.New("item cannot be removed")
	ErrInvalidStatus = errors.New("invalid line status")
)

// ValidationError is a single field-level problem with a draft item.
type ValidationError struct {
	Field   string // "group", "status", "start", "end", "reason", "quantity"
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field problem found in one draft.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return "invalid schedule item: " + strings.Join(parts, "; ")
}

// Field returns the message recorded for field, if any.
func (e ValidationErrors) Field(field string) (string, bool) {
	for _, v := range e {
		if v.Field == field {
			return v.Message, true
		}
	}
	return "", false
}

// StatusTransitionError reports a manual status switch outside the
// transition table.
type StatusTransitionError struct {
	From Status
	To   Status
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("cannot switch status from %s to %s", e.From, e.To)
}

// OverlapError reports that a status segment collides with another one on
// the same machine.
type OverlapError struct {
	ID       string // candidate
	Conflict string // colliding item
	Group    string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("item %q overlaps with %q on machine %s", e.ID, e.Conflict, e.Group)
}

// PersistenceError wraps a failed create, update, delete or list call.
type PersistenceError struct {
	Op  string // "create", "update", "delete", "list"
	ID  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q failed: %v", e.Op, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
