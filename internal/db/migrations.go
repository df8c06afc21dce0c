package db

import "fmt"

// migrate creates the machine and schedule record tables.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS machines (
			id                     TEXT PRIMARY KEY,
			machine_sn             TEXT NOT NULL UNIQUE,
			production_area        TEXT NOT NULL DEFAULT '',
			single_or_double_color TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS schedule_records (
			id                  TEXT PRIMARY KEY,
			machine_sn          TEXT NOT NULL,
			timeline_status     TEXT NOT NULL,
			start_time          TEXT,
			end_time            TEXT,
			plan_start          TEXT,
			plan_end            TEXT,
			actual_start        TEXT,
			actual_end          TEXT,
			product_sn          TEXT,
			product_name        TEXT,
			process_name        TEXT,
			work_order_quantity INTEGER NOT NULL DEFAULT 0,
			production_quantity INTEGER NOT NULL DEFAULT 0,
			order_status        TEXT,
			reason              TEXT,
			product             TEXT,
			created_at          DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_records_machine ON schedule_records(machine_sn);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedule tables: %w", err)
	}

	return nil
}
