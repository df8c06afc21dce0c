// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// ScheduleConfig holds the timeline and gatekeeper settings.
type ScheduleConfig struct {
	WorkStartHour         int    `toml:"work_start_hour"`         // hour day/week/month windows open
	DefaultSpanMinutes    int    `toml:"default_span_minutes"`    // length of items without an end
	MinOrderHours         int    `toml:"min_order_hours"`         // shortest schedulable work order
	ReasonMinLength       int    `toml:"reason_min_length"`       // stop reason, in characters
	ReasonMaxLength       int    `toml:"reason_max_length"`       // stop reason, in characters
	AllowAdjacentSegments bool   `toml:"allow_adjacent_segments"` // let segments touch end to start
	Timezone              string `toml:"timezone"`                // e.g. "Asia/Taipei", "Local"
	DefaultGranularity    string `toml:"default_granularity"`     // "hour", "day", "week", "month"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver string `toml:"driver"`  // "sqlite" or "postgres"
	DBPath string `toml:"db_path"` // sqlite file
	DSN    string `toml:"dsn"`     // postgres connection string
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	rules := schedule.DefaultRules()
	return &Config{
		Schedule: ScheduleConfig{
			WorkStartHour:      scheduler.WorkStartHour,
			DefaultSpanMinutes: int(schedule.DefaultSpan / time.Minute),
			MinOrderHours:      int(rules.MinOrderDuration / time.Hour),
			ReasonMinLength:    rules.ReasonMinLength,
			ReasonMaxLength:    rules.ReasonMaxLength,
			Timezone:           "Local",
			DefaultGranularity: string(scheduler.Day),
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wisesched.db"
	}
	return filepath.Join(home, ".local", "share", "wisesched", "wisesched.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "wisesched", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		env string
		dst *int
	}{
		{"WISESCHED_WORK_START_HOUR", &cfg.Schedule.WorkStartHour},
		{"WISESCHED_DEFAULT_SPAN_MINUTES", &cfg.Schedule.DefaultSpanMinutes},
		{"WISESCHED_MIN_ORDER_HOURS", &cfg.Schedule.MinOrderHours},
		{"WISESCHED_REASON_MIN_LENGTH", &cfg.Schedule.ReasonMinLength},
		{"WISESCHED_REASON_MAX_LENGTH", &cfg.Schedule.ReasonMaxLength},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.env, v)
		}
		*o.dst = n
	}

	if v := os.Getenv("WISESCHED_ALLOW_ADJACENT_SEGMENTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WISESCHED_ALLOW_ADJACENT_SEGMENTS must be a boolean, got %q", v)
		}
		cfg.Schedule.AllowAdjacentSegments = b
	}
	if v := os.Getenv("WISESCHED_TIMEZONE"); v != "" {
		cfg.Schedule.Timezone = v
	}
	if v := os.Getenv("WISESCHED_DEFAULT_GRANULARITY"); v != "" {
		cfg.Schedule.DefaultGranularity = v
	}

	// Storage overrides
	if v := os.Getenv("WISESCHED_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("WISESCHED_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WISESCHED_DSN"); v != "" {
		cfg.Storage.DSN = v
	}

	if v := os.Getenv("WISESCHED_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WISESCHED_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WISESCHED_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	s := c.Schedule
	if s.WorkStartHour < 0 || s.WorkStartHour > 23 {
		return fmt.Errorf("work_start_hour must be between 0 and 23, got %d", s.WorkStartHour)
	}
	if s.DefaultSpanMinutes <= 0 {
		return errors.New("default_span_minutes must be positive")
	}
	if s.MinOrderHours < 0 {
		return errors.New("min_order_hours cannot be negative")
	}
	if s.ReasonMinLength < 0 || s.ReasonMaxLength <= 0 {
		return errors.New("reason lengths must be positive")
	}
	if s.ReasonMinLength > s.ReasonMaxLength {
		return errors.New("reason_min_length must not exceed reason_max_length")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if !isValidGranularity(s.DefaultGranularity) {
		return fmt.Errorf("invalid default_granularity: %s", s.DefaultGranularity)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("dsn must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s", c.Storage.Driver)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func isValidGranularity(g string) bool {
	switch scheduler.Granularity(strings.ToLower(g)) {
	case scheduler.Hour, scheduler.Day, scheduler.Week, scheduler.Month:
		return true
	default:
		return false
	}
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Schedule.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

// Rules returns the field validation limits.
func (c *Config) Rules() schedule.Rules {
	return schedule.Rules{
		MinOrderDuration: time.Duration(c.Schedule.MinOrderHours) * time.Hour,
		ReasonMinLength:  c.Schedule.ReasonMinLength,
		ReasonMaxLength:  c.Schedule.ReasonMaxLength,
	}
}

// DefaultSpan returns the fallback length of items without an end.
func (c *Config) DefaultSpan() time.Duration {
	return time.Duration(c.Schedule.DefaultSpanMinutes) * time.Minute
}

// LogLevel returns the slog level for the configured name.
func (c *Config) LogLevel() slog.Level {
	lvl, _ := parseLevel(c.Log.Level)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
