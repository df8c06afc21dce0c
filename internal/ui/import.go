package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/wisesched/internal/fixture"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Seed machines and records from a YAML fixture",
		Long: `Load a fixture into the configured store.

The fixture holds a machines list and a records list in the shapes the
backend exchanges. Machines are upserted by serial number; records whose
id already exists are skipped, so importing the same file twice is safe.`,
		Example: `  wisesched import testdata/floor.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("fixture does not exist: %s", path)
				}
				return fmt.Errorf("checking fixture: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("fixture path is a directory: %s", path)
			}

			f, err := fixture.Load(path)
			if err != nil {
				return err
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			res, err := fixture.Seed(context.Background(), a.store, f, a.location())
			if err != nil {
				return err
			}
			a.board = nil

			a.logger().Debug("fixture imported", "path", path, "machines", res.Machines, "created", res.Created, "skipped", res.Skipped)
			_, _ = fmt.Fprintf(a.out, "Imported %d machines and %d records from %s", res.Machines, res.Created, path)
			if res.Skipped > 0 {
				_, _ = fmt.Fprintf(a.out, " (%d already present)", res.Skipped)
			}
			_, _ = fmt.Fprintln(a.out)
			return nil
		},
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
