package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/board"
	"github.com/javiermolinar/wisesched/internal/dateutil"
	"github.com/javiermolinar/wisesched/internal/schedule"
)

// itemFlags are the field flags shared by add and update.
type itemFlags struct {
	group       string
	status      string
	start       string
	end         string
	reason      string
	product     string
	productID   string
	productName string
	process     string
	quantity    int
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.group, "group", "", "Machine serial number")
	cmd.Flags().StringVar(&f.start, "start", "", "Start instant (2024-08-16T10:00 or RFC3339)")
	cmd.Flags().StringVar(&f.end, "end", "", "End instant")
	cmd.Flags().StringVar(&f.reason, "reason", "", "Status reason (stopped segments)")
	cmd.Flags().StringVar(&f.product, "product", "", "Product on a status segment")
}

func (f *itemFlags) registerOrder(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.productID, "product-id", "", "Work order product serial")
	cmd.Flags().StringVar(&f.productName, "product-name", "", "Work order product name")
	cmd.Flags().StringVar(&f.process, "process", "", "Work order process name")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "Work order quantity")
}

// patch converts the flags that were set into a board patch.
func (f *itemFlags) patch(cmd *cobra.Command, a *App) (board.Patch, error) {
	var (
		p    board.Patch
		errs schedule.ValidationErrors
	)
	loc := a.location()
	changed := cmd.Flags().Changed

	if changed("group") {
		g := strings.TrimSpace(f.group)
		p.Group = &g
	}
	if f.status != "" {
		st, ok := schedule.ParseStatus(f.status)
		if !ok {
			errs = append(errs, schedule.ValidationError{Field: "status", Message: "unknown status " + f.status})
		} else {
			p.Status = &st
		}
	}
	if changed("start") {
		t, err := parseInstantFlag(f.start, loc)
		if err != nil {
			errs = append(errs, schedule.ValidationError{Field: "start", Message: err.Error()})
		} else {
			p.Start = &t
		}
	}
	if changed("end") {
		t, err := parseInstantFlag(f.end, loc)
		if err != nil {
			errs = append(errs, schedule.ValidationError{Field: "end", Message: err.Error()})
		} else {
			p.End = &t
		}
	}
	if changed("reason") {
		p.Reason = &f.reason
	}
	if changed("product") {
		p.Product = &f.product
	}
	if f.hasOrder(changed) {
		p.Order = &schedule.OrderInfo{
			ProductID:   strings.TrimSpace(f.productID),
			ProductName: strings.TrimSpace(f.productName),
			Process:     strings.TrimSpace(f.process),
			Quantity:    f.quantity,
		}
	}

	if len(errs) > 0 {
		return board.Patch{}, errs
	}
	return p, nil
}

func (f *itemFlags) hasOrder(changed func(string) bool) bool {
	for _, name := range []string{"product-id", "product-name", "process", "quantity"} {
		if changed(name) {
			return true
		}
	}
	return false
}

func (a *App) addCmd() *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a work order or a machine-status segment",
		Long: `Add an item to a machine lane.

--status selects the kind of item: ORDER_CREATED adds a work order, IDLE,
SETUP, TESTING and STOPPED add a status segment. When --end is omitted
the item lasts the configured default span.`,
		Example: `  wisesched add --group=A1 --status=STOPPED --start=2024-08-16T10:00 --end=2024-08-16T12:00 --reason="mould crack"
  wisesched add --group=A1 --status=ORDER_CREATED --start=2024-08-17T08:00 --end=2024-08-17T16:00 --product-id=P-100 --quantity=500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := a.ensureBoard(ctx); err != nil {
				return err
			}

			p, err := f.patch(cmd, a)
			if err != nil {
				return rejected(err)
			}
			if p.Start != nil && p.End == nil {
				end := p.Start.Add(a.config.DefaultSpan())
				p.End = &end
			}

			it, err := a.board.Save(ctx, p.Apply(schedule.Item{}), a.now())
			if err != nil {
				return rejected(err)
			}

			_, _ = fmt.Fprintln(a.out, formatOK(fmt.Sprintf("Created %s %s on %s", it.Status, it.ID, it.Group)))
			_, _ = fmt.Fprintln(a.out, formatItemLine(it))
			return nil
		},
	}

	f.register(cmd)
	f.registerOrder(cmd)
	cmd.Flags().StringVar(&f.status, "status", "", "ORDER_CREATED, IDLE, SETUP, TESTING or STOPPED")

	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("status")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func parseInstantFlag(s string, loc *time.Location) (time.Time, error) {
	t, ok := dateutil.ParseInstant(s, loc)
	if !ok {
		return time.Time{}, dateutil.ErrInvalidInstant
	}
	return t, nil
}
