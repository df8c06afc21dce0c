package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/dateutil"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	var (
		granularity string
		ref         string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show machine occupancy for the window",
		Long: `Show, per machine, how the window is booked: work order hours,
setup, testing and stop hours, and planned versus completed quantity.`,
		Example: `  wisesched summary --granularity=week`,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureBoard(context.Background()); err != nil {
				return err
			}

			now := a.now().In(a.location())
			r, err := dateutil.ParseReference(ref, now)
			if err != nil {
				return fmt.Errorf("invalid --ref: %w", err)
			}

			s := summary.Build(a.board, a.granularity(granularity), r, now)
			printSummary(a, s)
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "", "hour, day, week or month (default from config)")
	cmd.Flags().StringVar(&ref, "ref", "", "Reference instant (default now)")

	return cmd
}

func printSummary(a *App, s *summary.Summary) {
	_, _ = fmt.Fprintln(a.out, formatHeader("Occupancy "+formatRange(s.Start, s.End)))
	_, _ = fmt.Fprintln(a.out)

	if len(s.Machines) == 0 {
		_, _ = fmt.Fprintln(a.out, "No machines found.")
		return
	}

	_, _ = fmt.Fprintf(a.out, "%-10s %6s %6s %6s %6s %6s %12s\n", "MACHINE", "ORDER", "SETUP", "TEST", "STOP", "USE", "QTY")
	for _, m := range s.Machines {
		_, _ = fmt.Fprintf(a.out, "%-10s %6s %6s %6s %6s %5d%% %12s\n",
			m.Group,
			hours(m.OrderMinutes()),
			hours(m.Minutes[schedule.StatusSetup]),
			hours(m.Minutes[schedule.StatusTesting]),
			hours(m.StoppedMinutes()),
			s.Utilisation(m),
			fmt.Sprintf("%d/%d", m.CompletedQuantity, m.OrderQuantity),
		)
	}

	_, _ = fmt.Fprintln(a.out)
	_, _ = fmt.Fprintf(a.out, "%s %d items, %s of orders, %s stopped\n",
		formatMuted("total"), s.Totals.Items, hours(s.Totals.OrderMinutes()), hours(s.Totals.StoppedMinutes()))
}

// hours renders minutes as "2h30", or "-" for zero.
func hours(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}
