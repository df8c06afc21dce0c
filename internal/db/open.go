package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/wisesched/internal/config"
	"github.com/javiermolinar/wisesched/internal/schedule"
)

// Store is a repository that can also be seeded with machines.
type Store interface {
	schedule.Repository
	schedule.MachineWriter
}

// Open returns the store selected by cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgres(cfg.DSN)
	case config.DriverSQLite, "":
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return New(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
