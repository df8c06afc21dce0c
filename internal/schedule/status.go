package schedule

import (
	"slices"
	"strings"
)

// Status is the production-line state of a timeline item.
type Status string

const (
	StatusOrderCreated Status = "ORDER_CREATED"
	StatusIdle         Status = "IDLE"
	StatusSetup        Status = "SETUP"
	StatusTesting      Status = "TESTING"
	StatusStopped      Status = "STOPPED"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusOrderCreated,
	StatusIdle,
	StatusSetup,
	StatusTesting,
	StatusStopped,
}

// labels are the timeLineStatus values the backend exchanges.
var labels = map[Status]string{
	StatusOrderCreated: "製令單",
	StatusIdle:         "待機中",
	StatusSetup:        "上模與調機",
	StatusTesting:      "產品試模",
	StatusStopped:      "機台停機",
}

// transitions holds the manual status switches: from -> allowed tos.
// ORDER_CREATED only changes through the order lifecycle.
var transitions = map[Status][]Status{
	StatusOrderCreated: {},
	StatusIdle:         {StatusSetup, StatusTesting, StatusStopped},
	StatusSetup:        {StatusIdle},
	StatusTesting:      {StatusIdle},
	StatusStopped:      {StatusIdle},
}

// Valid returns true if s is one of the five line statuses.
func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// IsOrder returns true for work-order items.
func (s Status) IsOrder() bool {
	return s == StatusOrderCreated
}

// Label returns the backend label for s, or s itself when unknown.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus accepts a canonical name (case-insensitive) or a backend label.
func ParseStatus(v string) (Status, bool) {
	v = strings.TrimSpace(v)
	if s := Status(strings.ToUpper(v)); s.Valid() {
		return s, true
	}
	for s, l := range labels {
		if l == v {
			return s, true
		}
	}
	return "", false
}

// CanTransition reports whether a manual switch from -> to is allowed.
// Self transitions are never allowed.
func CanTransition(from, to Status) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return slices.Contains(allowed, to)
}

// AllowedTargets returns the statuses reachable from from by a manual switch.
// The returned slice is a copy.
func AllowedTargets(from Status) []Status {
	return slices.Clone(transitions[from])
}

// Transition validates a manual switch and returns a *StatusTransitionError
// when it is not in the transition table.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return &StatusTransitionError{From: from, To: to}
	}
	return nil
}
