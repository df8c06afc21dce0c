package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/dateutil"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

func (a *App) listCmd() *cobra.Command {
	var (
		group       string
		granularity string
		ref         string
		all         bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedule items",
		Long: `List work orders and machine-status segments grouped by machine.

By default only items touching the current window are shown. The window
is computed from --granularity (hour, day, week, month) around --ref.`,
		Example: `  wisesched list
  wisesched list --granularity=week --ref=2024-08-16
  wisesched list --group=A1 --all`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureBoard(context.Background()); err != nil {
				return err
			}

			now := a.now().In(a.location())
			items := a.board.Items(now)

			if !all {
				r, err := dateutil.ParseReference(ref, now)
				if err != nil {
					return fmt.Errorf("invalid --ref: %w", err)
				}
				w := a.board.Window(a.granularity(granularity), r)
				items = inWindow(items, w)
				_, _ = fmt.Fprintln(a.out, formatMuted("window "+formatRange(w.Start, w.End)))
			}
			if group != "" {
				items = inGroup(items, group)
			}

			if len(items) == 0 {
				_, _ = fmt.Fprintln(a.out, "No items found.")
				return nil
			}

			// Items arrive ordered by machine, then start.
			var current string
			for _, it := range items {
				if it.Group != current {
					if current != "" {
						_, _ = fmt.Fprintln(a.out)
					}
					_, _ = fmt.Fprintln(a.out, formatHeader("=== "+it.Group+" ==="))
					current = it.Group
				}
				_, _ = fmt.Fprintln(a.out, formatItemLine(it))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Only show this machine")
	cmd.Flags().StringVar(&granularity, "granularity", "", "Window size: hour, day, week or month (default from config)")
	cmd.Flags().StringVar(&ref, "ref", "", "Reference instant (now, today, tomorrow, 2024-08-16T15:00)")
	cmd.Flags().BoolVar(&all, "all", false, "Show every item regardless of the window")

	return cmd
}

// granularity returns the flag value, or the configured default when empty.
func (a *App) granularity(flag string) scheduler.Granularity {
	if flag == "" {
		flag = a.config.Schedule.DefaultGranularity
	}
	return scheduler.ParseGranularity(flag)
}

// inWindow keeps items that intersect w.
func inWindow(items []schedule.Item, w scheduler.Window) []schedule.Item {
	var out []schedule.Item
	for _, it := range items {
		if it.Start.Before(w.End) && it.End.After(w.Start) {
			out = append(out, it)
		}
	}
	return out
}

func inGroup(items []schedule.Item, group string) []schedule.Item {
	var out []schedule.Item
	for _, it := range items {
		if it.Group == group {
			out = append(out, it)
		}
	}
	return out
}
