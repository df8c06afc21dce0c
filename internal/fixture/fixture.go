// Package fixture reads machine and schedule record fixtures from YAML and
// seeds them into a store.
package fixture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/wisesched/internal/db"
	"github.com/javiermolinar/wisesched/internal/schedule"
)

// File is the fixture document: a machine list and a record list in the
// shapes the backend exchanges.
type File struct {
	Machines []schedule.Machine `yaml:"machines"`
	Records  []schedule.Record  `yaml:"records"`
}

// Target receives seeded data.
type Target interface {
	schedule.MachineWriter
	CreateRecord(ctx context.Context, rec schedule.Record) (schedule.Record, error)
}

// Result counts what Seed wrote.
type Result struct {
	Machines int
	Created  int
	Skipped  int // records whose id already existed
}

// Load reads and validates the fixture at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a fixture document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every machine has a serial number and every record
// names a known status and, when machines are listed, a known machine.
func (f *File) Validate() error {
	known := make(map[string]bool, len(f.Machines))
	for i, m := range f.Machines {
		sn := strings.TrimSpace(m.MachineSN)
		if sn == "" {
			return fmt.Errorf("machine %d: machineSN is required", i+1)
		}
		if known[sn] {
			return fmt.Errorf("machine %d: duplicate machineSN %q", i+1, sn)
		}
		known[sn] = true
	}

	for i, r := range f.Records {
		if strings.TrimSpace(r.Group) == "" {
			return fmt.Errorf("record %d: machineSN is required", i+1)
		}
		if len(known) > 0 && !known[strings.TrimSpace(r.Group)] {
			return fmt.Errorf("record %d: %w %q", i+1, schedule.ErrUnknownGroup, r.Group)
		}
		if _, ok := schedule.ParseStatus(r.TimeLineStatus); !ok {
			return fmt.Errorf("record %d: %w %q", i+1, schedule.ErrInvalidStatus, r.TimeLineStatus)
		}
	}
	return nil
}

// Seed writes the machines, then every record. Records without an id are
// keyed by Record.StableKey in loc, so seeding the same file again skips
// them like any other record whose id is already stored.
func Seed(ctx context.Context, t Target, f *File, loc *time.Location) (Result, error) {
	var res Result

	if err := t.UpsertMachines(ctx, f.Machines); err != nil {
		return res, fmt.Errorf("seeding machines: %w", err)
	}
	res.Machines = len(f.Machines)

	for _, rec := range f.Records {
		if rec.Key() == "" {
			rec.ID = rec.StableKey(loc)
		}
		_, err := t.CreateRecord(ctx, rec)
		switch {
		case errors.Is(err, db.ErrDuplicateID):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("seeding record %q: %w", rec.Key(), err)
		default:
			res.Created++
		}
	}
	return res, nil
}
