package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  wisesched config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), os.Stdin, a.out)
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	s := &cfg.Schedule
	s.WorkStartHour = promptInt(reader, out, "Work start hour", s.WorkStartHour)
	s.DefaultSpanMinutes = promptInt(reader, out, "Default span (minutes)", s.DefaultSpanMinutes)
	s.MinOrderHours = promptInt(reader, out, "Minimum work order length (hours)", s.MinOrderHours)
	s.ReasonMinLength = promptInt(reader, out, "Stop reason min length", s.ReasonMinLength)
	s.ReasonMaxLength = promptInt(reader, out, "Stop reason max length", s.ReasonMaxLength)
	s.AllowAdjacentSegments = promptBool(reader, out, "Allow touching segments", s.AllowAdjacentSegments)
	s.Timezone = promptValue(reader, out, "Timezone", s.Timezone)
	s.DefaultGranularity = promptValue(reader, out, "Default granularity (hour/day/week/month)", s.DefaultGranularity)
	cfg.Storage.Driver = promptValue(reader, out, "Storage driver (sqlite/postgres)", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		cfg.Storage.DSN = promptValue(reader, out, "Postgres DSN", cfg.Storage.DSN)
	} else {
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	}
	cfg.Server.Addr = promptValue(reader, out, "HTTP listen address", cfg.Server.Addr)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.Log.Format = promptValue(reader, out, "Log format (text/json)", cfg.Log.Format)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }

	p("Current configuration:\n")
	p("──────────────────────\n")
	p("[schedule]\n")
	p("  work_start_hour         = %d\n", cfg.Schedule.WorkStartHour)
	p("  default_span_minutes    = %d\n", cfg.Schedule.DefaultSpanMinutes)
	p("  min_order_hours         = %d\n", cfg.Schedule.MinOrderHours)
	p("  reason_min_length       = %d\n", cfg.Schedule.ReasonMinLength)
	p("  reason_max_length       = %d\n", cfg.Schedule.ReasonMaxLength)
	p("  allow_adjacent_segments = %t\n", cfg.Schedule.AllowAdjacentSegments)
	p("  timezone                = %s\n", cfg.Schedule.Timezone)
	p("  default_granularity     = %s\n", cfg.Schedule.DefaultGranularity)
	p("\n[storage]\n")
	p("  driver                  = %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		p("  dsn                     = %s\n", cfg.Storage.DSN)
	} else {
		p("  db_path                 = %s\n", cfg.Storage.DBPath)
	}
	p("\n[server]\n")
	p("  addr                    = %s\n", cfg.Server.Addr)
	p("\n[log]\n")
	p("  level                   = %s\n", cfg.Log.Level)
	p("  format                  = %s\n", cfg.Log.Format)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(out, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		_, _ = fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, out, label, strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		_, _ = fmt.Fprintf(out, "  Invalid value %q, use true or false\n", value)
	}
}
