// Package ui implements the wisesched command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/board"
	"github.com/javiermolinar/wisesched/internal/config"
	"github.com/javiermolinar/wisesched/internal/db"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	store  db.Store
	board  *board.Board
	root   *cobra.Command
	debug  bool // Enable debug logging
	log    *slog.Logger
	out    io.Writer
	now    func() time.Time

	recorder board.Recorder // set by serve before the board is built
}

// NewApp creates a new CLI application. The store is opened lazily by the
// commands that need it.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, out: os.Stdout, now: time.Now}

	a.root = &cobra.Command{
		Use:   "wisesched",
		Short: "Machine and work-order scheduling for the production floor",
		Long: `wisesched keeps the production timeline of a moulding shop: one lane
per machine, work orders and machine-status segments (idle, setup,
testing, stopped) on each lane.

Every edit goes through the same checks: field rules, the line-status
transition table, past/future editability and overlap between segments.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.log = newLogger(a.config, a.debug, os.Stderr)
			slog.SetDefault(a.log)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.machinesCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.windowCmd())
	a.root.AddCommand(a.timelineCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.switchCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(a.out, "wisesched %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Close releases the store if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.board = nil
	return err
}

// ensureStore opens the configured store once.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := db.Open(a.config.Storage)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	a.store = store
	return nil
}

// ensureBoard opens the store and loads the machine lanes and items.
func (a *App) ensureBoard(ctx context.Context) error {
	if a.board != nil {
		return nil
	}
	if err := a.ensureStore(); err != nil {
		return err
	}

	loc, err := a.config.Location()
	if err != nil {
		return err
	}
	rules := a.config.Rules()

	b := board.New(a.store, board.Options{
		Transformer: schedule.NewTransformer(a.config.DefaultSpan(), loc),
		Rules:       &rules,
		Overlap:     schedule.OverlapValidator{AllowAdjacent: a.config.Schedule.AllowAdjacentSegments},
		Calculator:  scheduler.New(a.config.Schedule.WorkStartHour),
		Logger:      a.logger(),
		Recorder:    a.recorder,
	})
	if err := b.Load(ctx, a.now()); err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	a.board = b
	return nil
}

func (a *App) logger() *slog.Logger {
	if a.log == nil {
		a.log = newLogger(a.config, a.debug, os.Stderr)
	}
	return a.log
}

// location returns the configured zone, falling back to local time.
func (a *App) location() *time.Location {
	loc, err := a.config.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// newLogger builds the slog logger selected by the [log] section.
// debug forces the debug level.
func newLogger(cfg *config.Config, debug bool, w io.Writer) *slog.Logger {
	level := cfg.LogLevel()
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
