// Package db provides the persistence collaborator: a SQLite store for
// single-site use and a Postgres store for shared deployments. Both
// implement schedule.Repository and schedule.MachineWriter.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/wisesched/internal/schedule"
)

// ErrDuplicateID is returned when a created record reuses an existing id.
var ErrDuplicateID = errors.New("record id already exists")

const recordColumns = `
	id, machine_sn, timeline_status, start_time, end_time,
	plan_start, plan_end, actual_start, actual_end,
	product_sn, product_name, process_name, work_order_quantity, production_quantity, order_status,
	reason, product
`

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// ListMachines returns every machine ordered by serial number.
func (s *SQLite) ListMachines(ctx context.Context) ([]schedule.Machine, error) {
	query := `
		SELECT id, machine_sn, production_area, single_or_double_color
		FROM machines
		ORDER BY machine_sn
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying machines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var machines []schedule.Machine
	for rows.Next() {
		var m machineRow
		if err := rows.Scan(&m.ID, &m.MachineSN, &m.ProductionArea, &m.SingleOrDoubleColor); err != nil {
			return nil, fmt.Errorf("scanning machine: %w", err)
		}
		machines = append(machines, m.machine())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating machines: %w", err)
	}

	return machines, nil
}

// UpsertMachines inserts machines, replacing those with the same serial number.
func (s *SQLite) UpsertMachines(ctx context.Context, machines []schedule.Machine) error {
	if len(machines) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO machines (id, machine_sn, production_area, single_or_double_color)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(machine_sn) DO UPDATE SET
			production_area = excluded.production_area,
			single_or_double_color = excluded.single_or_double_color
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, m := range machines {
		if strings.TrimSpace(m.MachineSN) == "" {
			continue
		}
		row := machineToRow(m)
		if _, err := stmt.ExecContext(ctx, row.ID, row.MachineSN, row.ProductionArea, row.SingleOrDoubleColor); err != nil {
			return fmt.Errorf("upserting machine %q: %w", m.MachineSN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListRecords returns every record in insertion order.
func (s *SQLite) ListRecords(ctx context.Context) ([]schedule.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM schedule_records ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []schedule.Record
	for rows.Next() {
		row, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, row.record())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return recs, nil
}

// GetRecord retrieves a record by id. Returns schedule.ErrItemNotFound if absent.
func (s *SQLite) GetRecord(ctx context.Context, id string) (schedule.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM schedule_records WHERE id = ?`

	row, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Record{}, fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}
	if err != nil {
		return schedule.Record{}, err
	}
	return row.record(), nil
}

// CreateRecord stores rec under its key, or a new uuid when it has none.
// Returns ErrDuplicateID if the key is taken.
func (s *SQLite) CreateRecord(ctx context.Context, rec schedule.Record) (schedule.Record, error) {
	id := rec.Key()
	if id == "" {
		id = uuid.New().String()
	}
	row := recordToRow(id, rec)

	query := `
		INSERT INTO schedule_records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query, recordArgs(row)...)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("inserting record: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return schedule.Record{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	return s.GetRecord(ctx, id)
}

// UpdateRecord replaces every column of the record with id.
func (s *SQLite) UpdateRecord(ctx context.Context, id string, rec schedule.Record) (schedule.Record, error) {
	row := recordToRow(id, rec)

	query := `
		UPDATE schedule_records SET
			machine_sn = ?, timeline_status = ?, start_time = ?, end_time = ?,
			plan_start = ?, plan_end = ?, actual_start = ?, actual_end = ?,
			product_sn = ?, product_name = ?, process_name = ?,
			work_order_quantity = ?, production_quantity = ?, order_status = ?,
			reason = ?, product = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	args := append(recordArgs(row)[1:], id)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("updating record: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return schedule.Record{}, fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}

	return s.GetRecord(ctx, id)
}

// DeleteRecord removes the record with id.
func (s *SQLite) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM schedule_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (recordRow, error) {
	var r recordRow
	err := sc.Scan(
		&r.ID,
		&r.MachineSN,
		&r.TimelineStatus,
		&r.StartTime,
		&r.EndTime,
		&r.PlanStart,
		&r.PlanEnd,
		&r.ActualStart,
		&r.ActualEnd,
		&r.ProductSN,
		&r.ProductName,
		&r.ProcessName,
		&r.WorkOrderQuantity,
		&r.ProductionQuantity,
		&r.OrderStatus,
		&r.Reason,
		&r.Product,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("scanning record: %w", err)
	}
	return r, nil
}

// recordArgs returns the row values in recordColumns order.
func recordArgs(r recordRow) []any {
	return []any{
		r.ID,
		r.MachineSN,
		r.TimelineStatus,
		r.StartTime,
		r.EndTime,
		r.PlanStart,
		r.PlanEnd,
		r.ActualStart,
		r.ActualEnd,
		r.ProductSN,
		r.ProductName,
		r.ProcessName,
		r.WorkOrderQuantity,
		r.ProductionQuantity,
		r.OrderStatus,
		r.Reason,
		r.Product,
	}
}

var (
	_ schedule.Repository    = (*SQLite)(nil)
	_ schedule.MachineWriter = (*SQLite)(nil)
)
