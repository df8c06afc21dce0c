package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) machinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "machines",
		Short: "List the machine lanes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureBoard(context.Background()); err != nil {
				return err
			}

			groups := a.board.Groups()
			if len(groups) == 0 {
				_, _ = fmt.Fprintln(a.out, "No machines found. Import a fixture with 'wisesched import'.")
				return nil
			}

			_, _ = fmt.Fprintln(a.out, formatHeader(fmt.Sprintf("%-10s %s", "MACHINE", "AREA")))
			for _, g := range groups {
				_, _ = fmt.Fprintf(a.out, "%-10s %s\n", g.Label, g.Area)
			}
			return nil
		},
	}
}
