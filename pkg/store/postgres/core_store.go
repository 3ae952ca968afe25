package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

// CoreStore adapts the gorm store to the core's transactional boundary. Each
// InTx call is one database transaction; reads on contended rows take row
// locks so racing callers serialize instead of both passing validation.
type CoreStore struct {
	db *gorm.DB
}

func NewCoreStore(db *gorm.DB) *CoreStore {
	return &CoreStore{db: db}
}

func (s *CoreStore) InTx(ctx context.Context, fn func(tx core.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&coreTx{db: tx})
	})
}

type coreTx struct {
	db *gorm.DB
}

func (t *coreTx) Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "employee", id)
	}
	return &employee, nil
}

func (t *coreTx) ActiveEmployeesInRoom(ctx context.Context, roomID uuid.UUID, exclude uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	err := t.db.WithContext(ctx).
		Where("assigned_room_id = ? AND status = ? AND id <> ?", roomID, model.EmployeeActive, exclude).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}

func (t *coreTx) AssignedEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := t.db.WithContext(ctx).
		Where("assigned_room_id IS NOT NULL").
		Find(&employees).Error
	return employees, err
}

func (t *coreTx) SetEmployeeRoom(ctx context.Context, id uuid.UUID, roomID *uuid.UUID) (*model.Employee, error) {
	err := t.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_room_id": roomID,
			"updated_at":       time.Now(),
		}).Error
	if err != nil {
		return nil, translateError(err, "employee", id)
	}

	var employee model.Employee
	if err := t.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "employee", id)
	}
	return &employee, nil
}

func (t *coreTx) HousingUnit(ctx context.Context, id uuid.UUID) (*model.HousingUnit, error) {
	var unit model.HousingUnit
	err := t.db.WithContext(ctx).First(&unit, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "housing unit", id)
	}
	return &unit, nil
}

// Room locks the room row for the rest of the transaction. The assignment
// guard relies on this to serialize concurrent assignments to the same room.
func (t *coreTx) Room(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "room", id)
	}
	return &room, nil
}

func (t *coreTx) RoomsInUnit(ctx context.Context, unitID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	err := t.db.WithContext(ctx).
		Where("housing_unit_id = ?", unitID).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (t *coreTx) Rooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := t.db.WithContext(ctx).Find(&rooms).Error
	return rooms, err
}

func (t *coreTx) Item(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "inventory item", id)
	}
	return &item, nil
}

func (t *coreTx) SetItemCondition(ctx context.Context, id uuid.UUID, condition model.ItemCondition) error {
	err := t.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"condition":  condition,
			"updated_at": time.Now(),
		}).Error
	return translateError(err, "inventory item", id)
}

func (t *coreTx) Report(ctx context.Context, id uuid.UUID) (*model.DamageReport, error) {
	var report model.DamageReport
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "damage report", id)
	}
	return &report, nil
}

func (t *coreTx) CreateReport(ctx context.Context, report *model.DamageReport) error {
	return translateError(t.db.WithContext(ctx).Create(report).Error, "damage report", report.ID)
}

func (t *coreTx) SetReportStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus) (*model.DamageReport, error) {
	err := t.db.WithContext(ctx).Model(&model.DamageReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, translateError(err, "damage report", id)
	}

	var report model.DamageReport
	if err := t.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "damage report", id)
	}
	return &report, nil
}

func (t *coreTx) OpenReportsForItem(ctx context.Context, itemID uuid.UUID, exclude uuid.UUID) ([]model.DamageReport, error) {
	var reports []model.DamageReport
	err := t.db.WithContext(ctx).
		Where("item_id = ? AND status IN ? AND id <> ?",
			itemID, []model.ReportStatus{model.ReportPending, model.ReportInProgress}, exclude).
		Find(&reports).Error
	return reports, err
}

func (t *coreTx) OpenReports(ctx context.Context) ([]model.DamageReport, error) {
	var reports []model.DamageReport
	err := t.db.WithContext(ctx).
		Where("status IN ?", []model.ReportStatus{model.ReportPending, model.ReportInProgress}).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (t *coreTx) CountReportsByStatus(ctx context.Context) (map[model.ReportStatus]int64, error) {
	var rows []struct {
		Status model.ReportStatus
		Count  int64
	}
	err := t.db.WithContext(ctx).Model(&model.DamageReport{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[model.ReportStatus]int64{
		model.ReportPending:    0,
		model.ReportInProgress: 0,
		model.ReportResolved:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
