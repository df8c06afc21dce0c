// Package summary aggregates the items of a timeline window into
// per-machine occupancy figures.
package summary

import (
	"time"

	"github.com/javiermolinar/wisesched/internal/board"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

// MachineStats holds the occupancy of one machine lane in a window.
// Minutes are clipped to the window; orders and segments are counted
// independently, so they may add up to more than the window.
type MachineStats struct {
	Group             string                  `json:"group"`
	Area              string                  `json:"area"`
	Minutes           map[schedule.Status]int `json:"minutes"`
	Items             int                     `json:"items"`
	OrderQuantity     int                     `json:"orderQuantity"`
	CompletedQuantity int                     `json:"completedQuantity"`
}

// OrderMinutes returns the minutes booked by work orders.
func (s MachineStats) OrderMinutes() int {
	return s.Minutes[schedule.StatusOrderCreated]
}

// StoppedMinutes returns the minutes the machine is down.
func (s MachineStats) StoppedMinutes() int {
	return s.Minutes[schedule.StatusStopped]
}

// Summary holds the aggregated window.
type Summary struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Machines []MachineStats `json:"machines"`
	Totals   MachineStats   `json:"totals"`
}

// WindowMinutes returns the length of the window.
func (s *Summary) WindowMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Utilisation returns the share of the window booked by orders on a lane,
// in percent.
func (s *Summary) Utilisation(m MachineStats) int {
	total := s.WindowMinutes()
	if total <= 0 {
		return 0
	}
	return min(m.OrderMinutes()*100/total, 100)
}

// Summarize builds the summary of items over w. Every group gets a row,
// even when it has no items; items on unknown groups are ignored.
func Summarize(w scheduler.Window, groups []schedule.MachineGroup, items []schedule.Item) *Summary {
	s := &Summary{
		Start:    w.Start,
		End:      w.End,
		Machines: make([]MachineStats, len(groups)),
		Totals:   MachineStats{Minutes: map[schedule.Status]int{}},
	}

	byGroup := make(map[string]int, len(groups))
	for i, g := range groups {
		s.Machines[i] = MachineStats{Group: g.ID, Area: g.Area, Minutes: map[schedule.Status]int{}}
		byGroup[g.ID] = i
	}

	for _, it := range items {
		i, ok := byGroup[it.Group]
		if !ok {
			continue
		}
		minutes := clippedMinutes(it, w)
		if minutes == 0 {
			continue
		}

		m := &s.Machines[i]
		m.Items++
		m.Minutes[it.Status] += minutes
		s.Totals.Items++
		s.Totals.Minutes[it.Status] += minutes

		if o := it.Order; o != nil {
			m.OrderQuantity += o.Quantity
			m.CompletedQuantity += o.CompletedQty
			s.Totals.OrderQuantity += o.Quantity
			s.Totals.CompletedQuantity += o.CompletedQty
		}
	}

	return s
}

// Build summarizes the board's items for the window of g around ref.
func Build(b *board.Board, g scheduler.Granularity, ref, now time.Time) *Summary {
	return Summarize(b.Window(g, ref), b.Groups(), b.Items(now))
}

func clippedMinutes(it schedule.Item, w scheduler.Window) int {
	start := it.Start
	if start.Before(w.Start) {
		start = w.Start
	}
	end := it.End
	if end.After(w.End) {
		end = w.End
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}
