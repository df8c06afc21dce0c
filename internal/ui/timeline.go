package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/dateutil"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

const maxLabelWidth = 10

var (
	laneLabelStyle = lipgloss.NewStyle().Bold(true)
	laneEmptyStyle = lipgloss.NewStyle().Faint(true)
	laneStyles     = map[schedule.Status]lipgloss.Style{
		schedule.StatusOrderCreated: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		schedule.StatusIdle:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		schedule.StatusSetup:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		schedule.StatusTesting:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		schedule.StatusStopped:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	laneFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func (a *App) timelineCmd() *cobra.Command {
	var (
		granularity string
		ref         string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Draw one lane per machine across the window",
		Example: `  wisesched board
  wisesched board --granularity=week --ref=2024-08-16`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureBoard(context.Background()); err != nil {
				return err
			}

			now := a.now().In(a.location())
			r, err := dateutil.ParseReference(ref, now)
			if err != nil {
				return fmt.Errorf("invalid --ref: %w", err)
			}
			g := a.granularity(granularity)
			w := a.board.Window(g, r)

			_, _ = fmt.Fprintln(a.out, renderTimeline(a.board.Groups(), a.board.Items(now), w, termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "", "hour, day, week or month (default from config)")
	cmd.Flags().StringVar(&ref, "ref", "", "Reference instant (default now)")

	return cmd
}

// renderTimeline draws a lane per machine group. Each cell covers an equal
// slice of the window; segments are drawn over orders so stops stay visible.
func renderTimeline(groups []schedule.MachineGroup, items []schedule.Item, w scheduler.Window, width int) string {
	labelWidth := 0
	for _, g := range groups {
		labelWidth = max(labelWidth, ansi.StringWidth(g.Label))
	}
	labelWidth = min(max(labelWidth, 4), maxLabelWidth)

	frameW, _ := laneFrameStyle.GetFrameSize()
	cells := width - frameW - labelWidth - 1
	if cells < 8 {
		cells = 8
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s %s", labelWidth, "", formatRange(w.Start, w.End))
	b.WriteString(ansi.Truncate(header, labelWidth+1+cells, "…"))

	if len(groups) == 0 {
		b.WriteString("\n")
		b.WriteString(laneEmptyStyle.Render("no machines"))
		return laneFrameStyle.Render(b.String())
	}

	for _, g := range groups {
		b.WriteString("\n")
		label := ansi.Truncate(g.Label, labelWidth, "…")
		b.WriteString(laneLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, label)))
		b.WriteString(" ")
		b.WriteString(renderLane(laneCells(g.ID, items, w, cells)))
	}

	b.WriteString("\n")
	b.WriteString(renderLegend())
	return laneFrameStyle.Render(b.String())
}

// laneCells returns the status occupying each cell of one lane, or "" when
// the cell is empty.
func laneCells(group string, items []schedule.Item, w scheduler.Window, cells int) []schedule.Status {
	out := make([]schedule.Status, cells)
	total := w.Duration()
	if total <= 0 {
		return out
	}
	slot := total / time.Duration(cells)

	paint := func(it schedule.Item) {
		for i := range out {
			cs := w.Start.Add(slot * time.Duration(i))
			ce := cs.Add(slot)
			if it.Start.Before(ce) && it.End.After(cs) {
				out[i] = it.Status
			}
		}
	}

	for _, it := range items {
		if it.Group == group && it.IsOrder() {
			paint(it)
		}
	}
	for _, it := range items {
		if it.Group == group && !it.IsOrder() {
			paint(it)
		}
	}
	return out
}

func renderLane(cells []schedule.Status) string {
	var b strings.Builder
	for _, st := range cells {
		if st == "" {
			b.WriteString(laneEmptyStyle.Render("·"))
			continue
		}
		b.WriteString(laneStyles[st].Render(statusSymbol(st)))
	}
	return b.String()
}

func renderLegend() string {
	parts := make([]string, 0, len(schedule.Statuses))
	for _, st := range schedule.Statuses {
		parts = append(parts, laneStyles[st].Render(statusSymbol(st))+" "+string(st))
	}
	return strings.Join(parts, "  ")
}
