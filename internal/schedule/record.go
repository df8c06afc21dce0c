package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/wisesched/internal/dateutil"
)

// DefaultSpan is the length given to items whose end time is unknown.
const DefaultSpan = 2 * time.Hour

// Record is a raw row of the schedule/status record list. It is either
// order-shaped (TimeLineStatus "製令單") or status-shaped. Times are kept
// as the backend sends them and resolved by a Transformer.
type Record struct {
	ID             string `json:"id,omitempty" yaml:"id,omitempty"`
	Group          string `json:"machineSN" yaml:"machineSN"`
	TimeLineStatus string `json:"timeLineStatus" yaml:"timeLineStatus"`
	Start          string `json:"start,omitempty" yaml:"start,omitempty"`
	End            string `json:"end,omitempty" yaml:"end,omitempty"`

	// Order-shaped fields.
	ProductionScheduleID     string `json:"productionScheduleId,omitempty" yaml:"productionScheduleId,omitempty"`
	PlanOnMachineDate        string `json:"planOnMachineDate,omitempty" yaml:"planOnMachineDate,omitempty"`
	PlanFinishDate           string `json:"planFinishDate,omitempty" yaml:"planFinishDate,omitempty"`
	ActualOnMachineDate      string `json:"actualOnMachineDate,omitempty" yaml:"actualOnMachineDate,omitempty"`
	ActualFinishDate         string `json:"actualFinishDate,omitempty" yaml:"actualFinishDate,omitempty"`
	ProductSN                string `json:"productSN,omitempty" yaml:"productSN,omitempty"`
	ProductName              string `json:"productName,omitempty" yaml:"productName,omitempty"`
	ProcessName              string `json:"processName,omitempty" yaml:"processName,omitempty"`
	WorkOrderQuantity        int    `json:"workOrderQuantity,omitempty" yaml:"workOrderQuantity,omitempty"`
	ProductionQuantity       int    `json:"productionQuantity,omitempty" yaml:"productionQuantity,omitempty"`
	ProductionScheduleStatus string `json:"productionScheduleStatus,omitempty" yaml:"productionScheduleStatus,omitempty"`

	// Status-shaped fields.
	MachineStatusID              string `json:"machineStatusId,omitempty" yaml:"machineStatusId,omitempty"`
	MachineStatusPlanStartTime   string `json:"machineStatusPlanStartTime,omitempty" yaml:"machineStatusPlanStartTime,omitempty"`
	MachineStatusPlanEndTime     string `json:"machineStatusPlanEndTime,omitempty" yaml:"machineStatusPlanEndTime,omitempty"`
	MachineStatusActualStartTime string `json:"machineStatusActualStartTime,omitempty" yaml:"machineStatusActualStartTime,omitempty"`
	MachineStatusActualEndTime   string `json:"machineStatusActualEndTime,omitempty" yaml:"machineStatusActualEndTime,omitempty"`
	MachineStatusReason          string `json:"machineStatusReason,omitempty" yaml:"machineStatusReason,omitempty"`
	MachineStatusProduct         string `json:"machineStatusProduct,omitempty" yaml:"machineStatusProduct,omitempty"`
}

// Key returns the identity of the record: the shape-specific id when set,
// the generic id otherwise.
func (r Record) Key() string {
	if id := strings.TrimSpace(r.ProductionScheduleID); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.MachineStatusID); id != "" {
		return id
	}
	return strings.TrimSpace(r.ID)
}

// StableKey returns Key, or for a record without one the synthetic id derived
// from its status, machine and start resolved in loc. A record with no
// parseable start at all keys on the zero hour, so the result never depends
// on the clock.
func (r Record) StableKey(loc *time.Location) string {
	if id := r.Key(); id != "" {
		return id
	}
	return Transformer{Location: loc}.Transform(r, time.Time{}).ID
}

// Transformer converts raw records into timeline items.
type Transformer struct {
	Span     time.Duration  // fallback length, DefaultSpan when zero
	Location *time.Location // zone for timestamps without offset, time.Local when nil
}

// NewTransformer creates a Transformer with the given fallback span and zone.
func NewTransformer(span time.Duration, loc *time.Location) Transformer {
	return Transformer{Span: span, Location: loc}
}

// Transform resolves a raw record into an Item. It never fails: missing or
// unparseable times fall back to the record's own start/end, then to the
// hour containing now. The result always satisfies End > Start and carries
// editability flags computed against now.
func (tr Transformer) Transform(rec Record, now time.Time) Item {
	span := tr.span()

	status, ok := ParseStatus(rec.TimeLineStatus)
	if !ok {
		status = StatusIdle
	}

	group := strings.TrimSpace(rec.Group)
	it := Item{
		Group:  group,
		Area:   AreaOf(group),
		Status: status,
	}

	fbStart, fbEnd := tr.fallback(rec, now)

	if status.IsOrder() {
		it.PlanStart = tr.parse(rec.PlanOnMachineDate)
		it.PlanEnd = tr.parse(rec.PlanFinishDate)
		it.ActualStart = tr.parse(rec.ActualOnMachineDate)
		it.ActualEnd = tr.parse(rec.ActualFinishDate)

		it.Start = firstTime(fbStart, it.ActualStart, it.PlanStart)
		it.End = firstTime(fbEnd, it.ActualEnd, it.PlanEnd)
		it.Order = &OrderInfo{
			ProductID:    strings.TrimSpace(rec.ProductSN),
			ProductName:  strings.TrimSpace(rec.ProductName),
			Process:      strings.TrimSpace(rec.ProcessName),
			Quantity:     rec.WorkOrderQuantity,
			CompletedQty: rec.ProductionQuantity,
			OrderStatus:  strings.TrimSpace(rec.ProductionScheduleStatus),
		}
	} else {
		it.PlanStart = tr.parse(rec.MachineStatusPlanStartTime)
		it.PlanEnd = tr.parse(rec.MachineStatusPlanEndTime)
		it.ActualStart = tr.parse(rec.MachineStatusActualStartTime)
		it.ActualEnd = tr.parse(rec.MachineStatusActualEndTime)

		info := &StatusInfo{
			Reason:    strings.TrimSpace(rec.MachineStatusReason),
			Product:   strings.TrimSpace(rec.MachineStatusProduct),
			StartTime: cloneTime(firstPtr(it.ActualStart, it.PlanStart)),
			EndTime:   cloneTime(firstPtr(it.ActualEnd, it.PlanEnd)),
		}
		it.Machine = info

		it.Start = fbStart
		if info.StartTime != nil {
			it.Start = *info.StartTime
		}
		switch {
		case info.EndTime != nil:
			it.End = *info.EndTime
		case info.StartTime != nil:
			it.End = info.StartTime.Add(span)
		default:
			it.End = fbEnd
		}
	}

	if !it.End.After(it.Start) {
		it.End = it.Start.Add(span)
	}

	it.ID = rec.Key()
	if it.ID == "" {
		it.ID = syntheticID(it)
	}

	it.Editable = ResolveItem(it, now)
	return it
}

// Transform resolves rec with the default span in the local zone.
func Transform(rec Record, now time.Time) Item {
	return Transformer{}.Transform(rec, now)
}

// TransformAll transforms every record against the same reference time.
func (tr Transformer) TransformAll(recs []Record, now time.Time) []Item {
	items := make([]Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, tr.Transform(r, now))
	}
	return items
}

func (tr Transformer) span() time.Duration {
	if tr.Span <= 0 {
		return DefaultSpan
	}
	return tr.Span
}

func (tr Transformer) parse(s string) *time.Time {
	t, ok := dateutil.ParseInstant(s, tr.Location)
	if !ok {
		return nil
	}
	return &t
}

// fallback returns the record's own start/end, defaulting the start to the
// hour containing now and the end to start plus the span.
func (tr Transformer) fallback(rec Record, now time.Time) (time.Time, time.Time) {
	start := dateutil.TruncateToHour(now)
	if t := tr.parse(rec.Start); t != nil {
		start = *t
	}
	end := start.Add(tr.span())
	if t := tr.parse(rec.End); t != nil {
		end = *t
	}
	return start, end
}

func firstPtr(ts ...*time.Time) *time.Time {
	for _, t := range ts {
		if t != nil {
			return t
		}
	}
	return nil
}

func firstTime(def time.Time, ts ...*time.Time) time.Time {
	if t := firstPtr(ts...); t != nil {
		return *t
	}
	return def
}

func syntheticID(it Item) string {
	return fmt.Sprintf("%s-%s-%d", strings.ToLower(string(it.Status)), it.Group, it.Start.Unix())
}

// ToRecord renders an item as the payload the persistence collaborator
// accepts. Planned times default to the rendered range when absent.
func ToRecord(it Item) Record {
	rec := Record{
		ID:             it.ID,
		Group:          it.Group,
		TimeLineStatus: it.Status.Label(),
		Start:          dateutil.FormatInstant(it.Start),
		End:            dateutil.FormatInstant(it.End),
	}

	planStart := formatPtr(firstPtr(it.PlanStart, &it.Start))
	planEnd := formatPtr(firstPtr(it.PlanEnd, &it.End))

	if it.IsOrder() {
		rec.ProductionScheduleID = it.ID
		rec.PlanOnMachineDate = planStart
		rec.PlanFinishDate = planEnd
		rec.ActualOnMachineDate = formatPtr(it.ActualStart)
		rec.ActualFinishDate = formatPtr(it.ActualEnd)
		if o := it.Order; o != nil {
			rec.ProductSN = o.ProductID
			rec.ProductName = o.ProductName
			rec.ProcessName = o.Process
			rec.WorkOrderQuantity = o.Quantity
			rec.ProductionQuantity = o.CompletedQty
			rec.ProductionScheduleStatus = o.OrderStatus
		}
		return rec
	}

	rec.MachineStatusID = it.ID
	rec.MachineStatusPlanStartTime = planStart
	rec.MachineStatusPlanEndTime = planEnd
	rec.MachineStatusActualStartTime = formatPtr(it.ActualStart)
	rec.MachineStatusActualEndTime = formatPtr(it.ActualEnd)
	if m := it.Machine; m != nil {
		rec.MachineStatusReason = m.Reason
		rec.MachineStatusProduct = m.Product
	}
	return rec
}

func formatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateutil.FormatInstant(*t)
}
