// Package schedule defines the machine scheduling core: line statuses,
// timeline items, and the rules deciding what may change on them.
package schedule

import (
	"strings"
	"time"
	"unicode"
)

// Machine is a row of the machine-list collaborator.
type Machine struct {
	ID                  string `json:"id" yaml:"id"`
	MachineSN           string `json:"machineSN" yaml:"machineSN"`
	ProductionArea      string `json:"productionArea" yaml:"productionArea"`
	SingleOrDoubleColor string `json:"singleOrDoubleColor" yaml:"singleOrDoubleColor"`
}

// MachineGroup is one timeline lane. It is reference data and never mutated.
type MachineGroup struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Area  string `json:"area"`
}

// GroupsFromMachines converts the machine list into timeline lanes.
// Machines without a serial number are skipped.
func GroupsFromMachines(machines []Machine) []MachineGroup {
	groups := make([]MachineGroup, 0, len(machines))
	for _, m := range machines {
		sn := strings.TrimSpace(m.MachineSN)
		if sn == "" {
			continue
		}
		area := strings.TrimSpace(m.ProductionArea)
		if area == "" {
			area = AreaOf(sn)
		}
		groups = append(groups, MachineGroup{ID: sn, Label: sn, Area: area})
	}
	return groups
}

// AreaOf derives the production area from a machine id's leading letter.
func AreaOf(group string) string {
	for _, r := range group {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
		return ""
	}
	return ""
}

// OrderInfo is the work-order payload of an ORDER_CREATED item.
type OrderInfo struct {
	ProductID    string
	ProductName  string
	Process      string
	Quantity     int
	CompletedQty int
	OrderStatus  string
}

// StatusInfo is the payload of a status segment.
type StatusInfo struct {
	Reason    string // empty when not given
	Product   string // empty when not given
	StartTime *time.Time
	EndTime   *time.Time
}

// Editable lists which mutations an item currently permits.
// It is derived by Resolve and never read back from storage.
type Editable struct {
	UpdateTime  bool `json:"updateTime"`
	UpdateGroup bool `json:"updateGroup"`
	Remove      bool `json:"remove"`
}

// Item is a single entry on the production timeline.
// Exactly one of Order and Machine is set, selected by Status.
type Item struct {
	ID     string
	Group  string
	Area   string
	Status Status

	Start time.Time
	End   time.Time

	PlanStart   *time.Time
	PlanEnd     *time.Time
	ActualStart *time.Time
	ActualEnd   *time.Time

	Order   *OrderInfo
	Machine *StatusInfo

	Editable Editable
}

// IsOrder returns true if the item is a work order.
func (it *Item) IsOrder() bool {
	return it.Status.IsOrder()
}

// Duration returns the rendered span of the item.
func (it *Item) Duration() time.Duration {
	return it.End.Sub(it.Start)
}

// Clone returns a deep copy so index entries are never shared.
func (it Item) Clone() Item {
	c := it
	c.PlanStart = cloneTime(it.PlanStart)
	c.PlanEnd = cloneTime(it.PlanEnd)
	c.ActualStart = cloneTime(it.ActualStart)
	c.ActualEnd = cloneTime(it.ActualEnd)
	if it.Order != nil {
		o := *it.Order
		c.Order = &o
	}
	if it.Machine != nil {
		m := *it.Machine
		m.StartTime = cloneTime(it.Machine.StartTime)
		m.EndTime = cloneTime(it.Machine.EndTime)
		c.Machine = &m
	}
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// NewSegment builds a draft status segment. The id is assigned on save.
func NewSegment(group string, status Status, start, end time.Time, reason, product string) Item {
	it := Item{
		Group:  group,
		Area:   AreaOf(group),
		Status: status,
		Machine: &StatusInfo{
			Reason:  reason,
			Product: product,
		},
	}
	it.Reschedule(start, end)
	return it
}

// NewOrder builds a draft work order. The id is assigned on save unless set.
func NewOrder(group string, start, end time.Time, info OrderInfo) Item {
	o := info
	it := Item{
		Group:  group,
		Area:   AreaOf(group),
		Status: StatusOrderCreated,
		Order:  &o,
	}
	it.Reschedule(start, end)
	return it
}

// Reschedule moves the item to [start, end) and records that range as the
// new plan.
func (it *Item) Reschedule(start, end time.Time) {
	it.Start, it.End = start, end
	it.PlanStart, it.PlanEnd = timePtr(start), timePtr(end)
	if it.Machine != nil {
		it.Machine.StartTime = timePtr(start)
		it.Machine.EndTime = timePtr(end)
	}
}

// MoveTo reassigns the item to another machine lane.
func (it *Item) MoveTo(group string) {
	it.Group = group
	it.Area = AreaOf(group)
}
