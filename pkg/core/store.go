package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

// Store is the transactional entity-store boundary the core runs against. The
// core holds no state of its own between calls; every operation is one
// read-validate-write unit inside InTx, so concurrent callers racing on the
// same room or item serialize at the store.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the entity reads and writes the core needs within a transaction.
// Implementations must return taxonomy errors (CodeNotFound for missing rows,
// CodeConflict / CodeReferentialIntegrity for constraint violations).
type Tx interface {
	Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	// ActiveEmployeesInRoom returns active employees assigned to the room,
	// excluding the given employee id, ordered by employee_id ascending.
	ActiveEmployeesInRoom(ctx context.Context, roomID uuid.UUID, exclude uuid.UUID) ([]model.Employee, error)
	// AssignedEmployees returns every employee with a non-nil room pointer,
	// regardless of status.
	AssignedEmployees(ctx context.Context) ([]model.Employee, error)
	SetEmployeeRoom(ctx context.Context, id uuid.UUID, roomID *uuid.UUID) (*model.Employee, error)

	HousingUnit(ctx context.Context, id uuid.UUID) (*model.HousingUnit, error)
	Room(ctx context.Context, id uuid.UUID) (*model.Room, error)
	RoomsInUnit(ctx context.Context, unitID uuid.UUID) ([]model.Room, error)
	Rooms(ctx context.Context) ([]model.Room, error)

	Item(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	SetItemCondition(ctx context.Context, id uuid.UUID, condition model.ItemCondition) error

	Report(ctx context.Context, id uuid.UUID) (*model.DamageReport, error)
	CreateReport(ctx context.Context, report *model.DamageReport) error
	SetReportStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus) (*model.DamageReport, error)
	// OpenReportsForItem returns pending/in_progress reports for the item,
	// excluding the given report id.
	OpenReportsForItem(ctx context.Context, itemID uuid.UUID, exclude uuid.UUID) ([]model.DamageReport, error)
	OpenReports(ctx context.Context) ([]model.DamageReport, error)
	CountReportsByStatus(ctx context.Context) (map[model.ReportStatus]int64, error)
}
