package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

// Postgres implements schedule.Repository on PostgreSQL through gorm.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres connects to dsn, tunes the pool and migrates the schema.
func NewPostgres(dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := db.AutoMigrate(&machineRow{}, &recordRow{}); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Postgres{db: db}, nil
}

// ListMachines returns every machine ordered by serial number.
func (p *Postgres) ListMachines(ctx context.Context) ([]schedule.Machine, error) {
	var rows []machineRow
	if err := p.db.WithContext(ctx).Order("machine_sn").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying machines: %w", err)
	}

	machines := make([]schedule.Machine, 0, len(rows))
	for _, r := range rows {
		machines = append(machines, r.machine())
	}
	return machines, nil
}

// UpsertMachines inserts machines, replacing those with the same serial number.
func (p *Postgres) UpsertMachines(ctx context.Context, machines []schedule.Machine) error {
	rows := make([]machineRow, 0, len(machines))
	for _, m := range machines {
		if strings.TrimSpace(m.MachineSN) == "" {
			continue
		}
		rows = append(rows, machineToRow(m))
	}
	if len(rows) == 0 {
		return nil
	}

	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "machine_sn"}},
		DoUpdates: clause.AssignmentColumns([]string{"production_area", "single_or_double_color"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upserting machines: %w", err)
	}
	return nil
}

// ListRecords returns every record in creation order.
func (p *Postgres) ListRecords(ctx context.Context) ([]schedule.Record, error) {
	var rows []recordRow
	if err := p.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	recs := make([]schedule.Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.record())
	}
	return recs, nil
}

// CreateRecord stores rec under its key, or a new uuid when it has none.
func (p *Postgres) CreateRecord(ctx context.Context, rec schedule.Record) (schedule.Record, error) {
	id := rec.Key()
	if id == "" {
		id = uuid.New().String()
	}
	row := recordToRow(id, rec)

	result := p.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return schedule.Record{}, fmt.Errorf("inserting record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return schedule.Record{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	return row.record(), nil
}

// UpdateRecord replaces every column of the record with id.
func (p *Postgres) UpdateRecord(ctx context.Context, id string, rec schedule.Record) (schedule.Record, error) {
	row := recordToRow(id, rec)

	result := p.db.WithContext(ctx).Model(&recordRow{}).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(&row)
	if result.Error != nil {
		return schedule.Record{}, fmt.Errorf("updating record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return schedule.Record{}, fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}
	return row.record(), nil
}

// DeleteRecord removes the record with id.
func (p *Postgres) DeleteRecord(ctx context.Context, id string) error {
	result := p.db.WithContext(ctx).Where("id = ?", id).Delete(&recordRow{})
	if result.Error != nil {
		return fmt.Errorf("deleting record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ schedule.Repository    = (*Postgres)(nil)
	_ schedule.MachineWriter = (*Postgres)(nil)
)
