package db

import (
	"database/sql"
	"time"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

// machineRow is the stored form of a machine. It doubles as the gorm model.
type machineRow struct {
	ID                  string `gorm:"column:id;primaryKey;size:64"`
	MachineSN           string `gorm:"column:machine_sn;uniqueIndex;not null"`
	ProductionArea      string `gorm:"column:production_area"`
	SingleOrDoubleColor string `gorm:"column:single_or_double_color"`
}

func (machineRow) TableName() string { return "machines" }

func machineToRow(m schedule.Machine) machineRow {
	id := m.ID
	if id == "" {
		id = m.MachineSN
	}
	return machineRow{
		ID:                  id,
		MachineSN:           m.MachineSN,
		ProductionArea:      m.ProductionArea,
		SingleOrDoubleColor: m.SingleOrDoubleColor,
	}
}

func (r machineRow) machine() schedule.Machine {
	return schedule.Machine{
		ID:                  r.ID,
		MachineSN:           r.MachineSN,
		ProductionArea:      r.ProductionArea,
		SingleOrDoubleColor: r.SingleOrDoubleColor,
	}
}

// recordRow is the stored form of a schedule record. Plan and actual columns
// hold the order or the machine-status times depending on the record shape.
type recordRow struct {
	ID                 string         `gorm:"column:id;primaryKey;size:64"`
	MachineSN          string         `gorm:"column:machine_sn;index;not null"`
	TimelineStatus     string         `gorm:"column:timeline_status;not null"`
	StartTime          sql.NullString `gorm:"column:start_time"`
	EndTime            sql.NullString `gorm:"column:end_time"`
	PlanStart          sql.NullString `gorm:"column:plan_start"`
	PlanEnd            sql.NullString `gorm:"column:plan_end"`
	ActualStart        sql.NullString `gorm:"column:actual_start"`
	ActualEnd          sql.NullString `gorm:"column:actual_end"`
	ProductSN          sql.NullString `gorm:"column:product_sn"`
	ProductName        sql.NullString `gorm:"column:product_name"`
	ProcessName        sql.NullString `gorm:"column:process_name"`
	WorkOrderQuantity  int            `gorm:"column:work_order_quantity"`
	ProductionQuantity int            `gorm:"column:production_quantity"`
	OrderStatus        sql.NullString `gorm:"column:order_status"`
	Reason             sql.NullString `gorm:"column:reason"`
	Product            sql.NullString `gorm:"column:product"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
}

func (recordRow) TableName() string { return "schedule_records" }

func isOrderLabel(label string) bool {
	s, ok := schedule.ParseStatus(label)
	return ok && s.IsOrder()
}

// recordToRow flattens rec under id.
func recordToRow(id string, rec schedule.Record) recordRow {
	row := recordRow{
		ID:             id,
		MachineSN:      rec.Group,
		TimelineStatus: rec.TimeLineStatus,
		StartTime:      nullString(rec.Start),
		EndTime:        nullString(rec.End),
	}

	if isOrderLabel(rec.TimeLineStatus) {
		row.PlanStart = nullString(rec.PlanOnMachineDate)
		row.PlanEnd = nullString(rec.PlanFinishDate)
		row.ActualStart = nullString(rec.ActualOnMachineDate)
		row.ActualEnd = nullString(rec.ActualFinishDate)
		row.ProductSN = nullString(rec.ProductSN)
		row.ProductName = nullString(rec.ProductName)
		row.ProcessName = nullString(rec.ProcessName)
		row.WorkOrderQuantity = rec.WorkOrderQuantity
		row.ProductionQuantity = rec.ProductionQuantity
		row.OrderStatus = nullString(rec.ProductionScheduleStatus)
		return row
	}

	row.PlanStart = nullString(rec.MachineStatusPlanStartTime)
	row.PlanEnd = nullString(rec.MachineStatusPlanEndTime)
	row.ActualStart = nullString(rec.MachineStatusActualStartTime)
	row.ActualEnd = nullString(rec.MachineStatusActualEndTime)
	row.Reason = nullString(rec.MachineStatusReason)
	row.Product = nullString(rec.MachineStatusProduct)
	return row
}

// record rebuilds the backend shape of the row.
func (r recordRow) record() schedule.Record {
	rec := schedule.Record{
		ID:             r.ID,
		Group:          r.MachineSN,
		TimeLineStatus: r.TimelineStatus,
		Start:          r.StartTime.String,
		End:            r.EndTime.String,
	}

	if isOrderLabel(r.TimelineStatus) {
		rec.ProductionScheduleID = r.ID
		rec.PlanOnMachineDate = r.PlanStart.String
		rec.PlanFinishDate = r.PlanEnd.String
		rec.ActualOnMachineDate = r.ActualStart.String
		rec.ActualFinishDate = r.ActualEnd.String
		rec.ProductSN = r.ProductSN.String
		rec.ProductName = r.ProductName.String
		rec.ProcessName = r.ProcessName.String
		rec.WorkOrderQuantity = r.WorkOrderQuantity
		rec.ProductionQuantity = r.ProductionQuantity
		rec.ProductionScheduleStatus = r.OrderStatus.String
		return rec
	}

	rec.MachineStatusID = r.ID
	rec.MachineStatusPlanStartTime = r.PlanStart.String
	rec.MachineStatusPlanEndTime = r.PlanEnd.String
	rec.MachineStatusActualStartTime = r.ActualStart.String
	rec.MachineStatusActualEndTime = r.ActualEnd.String
	rec.MachineStatusReason = r.Reason.String
	rec.MachineStatusProduct = r.Product.String
	return rec
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
