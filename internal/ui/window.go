package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/dateutil"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

func (a *App) windowCmd() *cobra.Command {
	var (
		granularity string
		ref         string
		shift       int
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the timeline window for a zoom level",
		Long: `Print the viewport the timeline opens on.

hour shows one hour either side of the reference. day, week and month
open at the work start hour of their first day and close at the last
hour of their last day. Weeks start on Monday.`,
		Example: `  wisesched window --granularity=day --ref=2024-08-16T15:00
  wisesched window --granularity=month --shift=-1`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := a.now().In(a.location())
			r, err := dateutil.ParseReference(ref, now)
			if err != nil {
				return fmt.Errorf("invalid --ref: %w", err)
			}

			g := a.granularity(granularity)
			calc := scheduler.New(a.config.Schedule.WorkStartHour)
			if shift != 0 {
				r = calc.Shift(g, r, shift)
			}
			w := calc.Window(g, r)

			_, _ = fmt.Fprintf(a.out, "%s %s\n", formatHeader(string(g)), formatRange(w.Start, w.End))
			_, _ = fmt.Fprintf(a.out, "start %s\nend   %s\n", dateutil.FormatInstant(w.Start), dateutil.FormatInstant(w.End))
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "", "hour, day, week or month (default from config)")
	cmd.Flags().StringVar(&ref, "ref", "", "Reference instant (default now)")
	cmd.Flags().IntVar(&shift, "shift", 0, "Move the window by this many steps")

	return cmd
}
