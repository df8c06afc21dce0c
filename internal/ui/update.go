package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) updateCmd() *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Move, resize or edit an item",
		Long: `Change the machine, the time range or the details of an item.

Only the flags that are given change. Items that have started are
locked. Status segments can move to another machine but keep their
time; work orders can be moved and resized until they start.`,
		Example: `  wisesched update order-7 --start=2024-08-16T13:00 --end=2024-08-16T17:00
  wisesched update idle-1 --group=A3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.ensureBoard(ctx); err != nil {
				return err
			}

			p, err := f.patch(cmd, a)
			if err != nil {
				return rejected(err)
			}
			if p.Empty() {
				return errors.New("nothing to update: pass at least one field flag")
			}

			it, err := a.board.Update(ctx, args[0], p, a.now())
			if err != nil {
				return rejected(err)
			}

			_, _ = fmt.Fprintln(a.out, formatOK("Updated "+it.ID))
			_, _ = fmt.Fprintln(a.out, formatItemLine(it))
			return nil
		},
	}

	f.register(cmd)
	f.registerOrder(cmd)

	return cmd
}
