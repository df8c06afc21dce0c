package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Remove a future item",
		Long: `Remove an item from its lane. Only items that have not started yet
can be removed.`,
		Example: `  wisesched delete idle-1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.ensureBoard(ctx); err != nil {
				return err
			}

			if err := a.board.Delete(ctx, args[0], a.now()); err != nil {
				return rejected(err)
			}

			_, _ = fmt.Fprintln(a.out, formatOK("Deleted "+args[0]))
			return nil
		},
	}
}
