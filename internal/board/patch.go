package board

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

// Patch lists the fields an update intent changes. Nil fields keep their
// stored value.
type Patch struct {
	Group   *string
	Start   *time.Time
	End     *time.Time
	Status  *schedule.Status
	Reason  *string
	Product *string
	Order   *schedule.OrderInfo
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Group == nil && p.Start == nil && p.End == nil && p.Status == nil &&
		p.Reason == nil && p.Product == nil && p.Order == nil
}

// Apply returns a copy of it with the patch applied.
func (p Patch) Apply(it schedule.Item) schedule.Item {
	out := it.Clone()

	if p.Group != nil {
		out.MoveTo(*p.Group)
	}
	if p.Status != nil {
		out.Status = *p.Status
		switch {
		case out.Status.IsOrder() && out.Order == nil:
			out.Order = &schedule.OrderInfo{}
			out.Machine = nil
		case !out.Status.IsOrder() && out.Machine == nil:
			out.Machine = &schedule.StatusInfo{}
			out.Order = nil
		}
	}
	if p.Start != nil || p.End != nil {
		start, end := out.Start, out.End
		if p.Start != nil {
			start = *p.Start
		}
		if p.End != nil {
			end = *p.End
		}
		out.Reschedule(start, end)
	}
	if out.Machine != nil {
		if p.Reason != nil {
			out.Machine.Reason = *p.Reason
		}
		if p.Product != nil {
			out.Machine.Product = *p.Product
		}
	}
	if p.Order != nil && out.IsOrder() {
		o := *p.Order
		out.Order = &o
	}
	return out
}

// Update applies patch to the stored item with id and saves the result
// through the same gatekeepers as Save.
func (b *Board) Update(ctx context.Context, id string, patch Patch, now time.Time) (schedule.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.index.Get(id)
	if !ok {
		err := fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
		b.record("update", schedule.Item{ID: id}, err)
		return schedule.Item{}, err
	}

	draft := patch.Apply(prev)
	it, err := b.save(ctx, draft, now)
	b.record("update", draft, err)
	return it, err
}
