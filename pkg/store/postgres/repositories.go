package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/core"
	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

type HousingUnitRepository struct {
	db *gorm.DB
}

func NewHousingUnitRepository(db *gorm.DB) *HousingUnitRepository {
	return &HousingUnitRepository{db: db}
}

func (r *HousingUnitRepository) Create(ctx context.Context, unit *model.HousingUnit) error {
	return translateError(r.db.WithContext(ctx).Create(unit).Error, "housing unit", unit.ID)
}

func (r *HousingUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.HousingUnit, error) {
	var unit model.HousingUnit
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		First(&unit, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "housing unit", id)
	}
	return &unit, nil
}

func (r *HousingUnitRepository) List(ctx context.Context, status *model.UnitStatus, limit, offset int) ([]model.HousingUnit, int64, error) {
	var units []model.HousingUnit
	var total int64

	query := r.db.WithContext(ctx).Model(&model.HousingUnit{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&units).Error
	return units, total, err
}

func (r *HousingUnitRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.HousingUnit, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.HousingUnit{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError(result.Error, "housing unit", id)
	}
	if result.RowsAffected == 0 {
		return nil, core.NotFoundError("housing unit", id)
	}
	return r.GetByID(ctx, id)
}

// Delete rejects when the unit still has rooms; dependents are never cascaded.
func (r *HousingUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomCount int64
		if err := tx.Model(&model.Room{}).Where("housing_unit_id = ?", id).Count(&roomCount).Error; err != nil {
			return err
		}
		if roomCount > 0 {
			return core.NewError(core.CodeReferentialIntegrity,
				"housing unit %s still has %d room(s)", id, roomCount)
		}
		result := tx.Delete(&model.HousingUnit{}, "id = ?", id)
		if result.Error != nil {
			return translateError(result.Error, "housing unit", id)
		}
		if result.RowsAffected == 0 {
			return core.NotFoundError("housing unit", id)
		}
		return nil
	})
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	return translateError(r.db.WithContext(ctx).Create(room).Error, "room", room.ID)
}

func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "room", id)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context, unitID *uuid.UUID, status *model.RoomStatus, limit, offset int) ([]model.Room, int64, error) {
	var rooms []model.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Room{})
	if unitID != nil {
		query = query.Where("housing_unit_id = ?", *unitID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("room_number ASC").Limit(limit).Offset(offset).Find(&rooms).Error
	return rooms, total, err
}

func (r *RoomRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Room, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError(result.Error, "room", id)
	}
	if result.RowsAffected == 0 {
		return nil, core.NotFoundError("room", id)
	}
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemCount int64
		if err := tx.Model(&model.InventoryItem{}).Where("room_id = ?", id).Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount > 0 {
			return core.NewError(core.CodeReferentialIntegrity,
				"room %s still has %d inventory item(s)", id, itemCount)
		}
		var assignedCount int64
		if err := tx.Model(&model.Employee{}).Where("assigned_room_id = ?", id).Count(&assignedCount).Error; err != nil {
			return err
		}
		if assignedCount > 0 {
			return core.NewError(core.CodeReferentialIntegrity,
				"room %s is still assigned to %d employee(s)", id, assignedCount)
		}
		result := tx.Delete(&model.Room{}, "id = ?", id)
		if result.Error != nil {
			return translateError(result.Error, "room", id)
		}
		if result.RowsAffected == 0 {
			return core.NotFoundError("room", id)
		}
		return nil
	})
}

type InventoryItemRepository struct {
	db *gorm.DB
}

func NewInventoryItemRepository(db *gorm.DB) *InventoryItemRepository {
	return &InventoryItemRepository{db: db}
}

func (r *InventoryItemRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return translateError(r.db.WithContext(ctx).Create(item).Error, "inventory item", item.ID)
}

func (r *InventoryItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("Reports").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "inventory item", id)
	}
	return &item, nil
}

func (r *InventoryItemRepository) List(ctx context.Context, roomID *uuid.UUID, condition *model.ItemCondition, limit, offset int) ([]model.InventoryItem, int64, error) {
	var items []model.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&model.InventoryItem{})
	if roomID != nil {
		query = query.Where("room_id = ?", *roomID)
	}
	if condition != nil {
		query = query.Where("condition = ?", *condition)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// HasOpenReport reports whether the item's condition is currently owned by
// the damage workflow.
func (r *InventoryItemRepository) HasOpenReport(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DamageReport{}).
		Where("item_id = ? AND status IN ?", id,
			[]model.ReportStatus{model.ReportPending, model.ReportInProgress}).
		Count(&count).Error
	return count > 0, err
}

func (r *InventoryItemRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.InventoryItem, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError(result.Error, "inventory item", id)
	}
	if result.RowsAffected == 0 {
		return nil, core.NotFoundError("inventory item", id)
	}
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reportCount int64
		if err := tx.Model(&model.DamageReport{}).Where("item_id = ?", id).Count(&reportCount).Error; err != nil {
			return err
		}
		if reportCount > 0 {
			return core.NewError(core.CodeReferentialIntegrity,
				"inventory item %s has %d damage report(s)", id, reportCount)
		}
		result := tx.Delete(&model.InventoryItem{}, "id = ?", id)
		if result.Error != nil {
			return translateError(result.Error, "inventory item", id)
		}
		if result.RowsAffected == 0 {
			return core.NotFoundError("inventory item", id)
		}
		return nil
	})
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return translateError(r.db.WithContext(ctx).Create(employee).Error, "employee", employee.ID)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Preload("AssignedRoom").
		First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "employee", id)
	}
	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context, status *model.EmployeeStatus, department string, limit, offset int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Employee{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if department != "" {
		query = query.Where("department = ?", department)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("employee_id ASC").Limit(limit).Offset(offset).Find(&employees).Error
	return employees, total, err
}

func (r *EmployeeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Employee, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError(result.Error, "employee", id)
	}
	if result.RowsAffected == 0 {
		return nil, core.NotFoundError("employee", id)
	}
	return r.GetByID(ctx, id)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Employee{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "employee", id)
	}
	if result.RowsAffected == 0 {
		return core.NotFoundError("employee", id)
	}
	return nil
}

type DamageReportRepository struct {
	db *gorm.DB
}

func NewDamageReportRepository(db *gorm.DB) *DamageReportRepository {
	return &DamageReportRepository{db: db}
}

func (r *DamageReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DamageReport, error) {
	var report model.DamageReport
	err := r.db.WithContext(ctx).
		Preload("Item").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "damage report", id)
	}
	return &report, nil
}

func (r *DamageReportRepository) List(ctx context.Context, itemID *uuid.UUID, status *model.ReportStatus, limit, offset int) ([]model.DamageReport, int64, error) {
	var reports []model.DamageReport
	var total int64

	query := r.db.WithContext(ctx).Model(&model.DamageReport{})
	if itemID != nil {
		query = query.Where("item_id = ?", *itemID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error
	return reports, total, err
}

// ListResolvedSince returns reports resolved within the window, newest first.
// Backs the "recently repaired" display.
func (r *DamageReportRepository) ListResolvedSince(ctx context.Context, since time.Time) ([]model.DamageReport, error) {
	var reports []model.DamageReport
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at >= ?", model.ReportResolved, since).
		Order("updated_at DESC").
		Find(&reports).Error
	return reports, err
}
