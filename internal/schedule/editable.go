package schedule

import "time"

// Resolve returns the mutations allowed for an item of the given status that
// is (or is not) in the past. It is the single authority for editability.
//
//	order,   past   -> none
//	order,   future -> time, group
//	segment, past   -> none
//	segment, future -> group, remove
func Resolve(status Status, past bool) Editable {
	switch {
	case past:
		return Editable{}
	case status.IsOrder():
		return Editable{UpdateTime: true, UpdateGroup: true}
	default:
		return Editable{UpdateGroup: true, Remove: true}
	}
}

// ResolveItem recomputes the editability of it against now.
func ResolveItem(it Item, now time.Time) Editable {
	return Resolve(it.Status, IsPast(it, now))
}

// IsPast reports whether it has started before now, using the work-order or
// machine-status rule depending on its status.
func IsPast(it Item, now time.Time) bool {
	if it.IsOrder() {
		return IsPastWorkOrder(it, now)
	}
	return IsPastMachineStatus(it, now)
}

// IsPastWorkOrder is true when the order actually started before now, or,
// when it has not started, when its planned start is before now.
func IsPastWorkOrder(it Item, now time.Time) bool {
	if it.ActualStart != nil {
		return it.ActualStart.Before(now)
	}
	if it.PlanStart != nil {
		return it.PlanStart.Before(now)
	}
	return it.Start.Before(now)
}

// IsPastMachineStatus is true when the segment's start is strictly before now.
func IsPastMachineStatus(it Item, now time.Time) bool {
	start := it.Start
	if it.Machine != nil && it.Machine.StartTime != nil {
		start = *it.Machine.StartTime
	}
	return start.Before(now)
}
