package ui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/api"
	"github.com/javiermolinar/wisesched/internal/metrics"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule board over HTTP",
		Long: `Start the JSON API the timeline front end talks to.

Routes live under /api/v1; Prometheus metrics are served on /metrics.`,
		Example: `  wisesched serve
  wisesched serve --addr=127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.recorder = metrics.NewCollector(prometheus.DefaultRegisterer)
			if err := a.ensureBoard(ctx); err != nil {
				return err
			}

			if addr == "" {
				addr = a.config.Server.Addr
			}
			api.Version = Version

			srv := api.New(a.board, api.Options{
				Logger:             a.logger(),
				Location:           a.location(),
				Gatherer:           prometheus.DefaultGatherer,
				DefaultGranularity: a.granularity(""),
				Now:                a.now,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
