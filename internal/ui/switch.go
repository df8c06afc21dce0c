package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

func (a *App) switchCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "switch ID STATUS",
		Short: "Switch the line status of an item",
		Long: `Switch an item to another line status.

Allowed switches:
  IDLE     -> SETUP, TESTING, STOPPED
  SETUP    -> IDLE
  TESTING  -> IDLE
  STOPPED  -> IDLE

Work orders cannot be switched manually.`,
		Example: `  wisesched switch idle-1 SETUP
  wisesched switch idle-2 STOPPED --reason="hydraulic leak"`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.ensureBoard(ctx); err != nil {
				return err
			}

			to, ok := schedule.ParseStatus(args[1])
			if !ok {
				names := make([]string, len(schedule.Statuses))
				for i, s := range schedule.Statuses {
					names[i] = string(s)
				}
				return fmt.Errorf("unknown status %q (one of %s)", args[1], strings.Join(names, ", "))
			}

			it, err := a.board.SwitchStatus(ctx, args[0], to, reason, a.now())
			if err != nil {
				return rejected(err)
			}

			_, _ = fmt.Fprintf(a.out, "%s %s is now %s\n", formatOK("Switched"), it.ID, formatStatus(it.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the new status")

	return cmd
}
