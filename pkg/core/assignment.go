package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

// AssignmentGuard validates and applies room assignment changes. A room is
// exclusive to a single active employee regardless of its declared capacity;
// inactive and on-leave employees neither block a room nor get their stale
// pointer cleared.
type AssignmentGuard struct {
	store  Store
	logger *zap.Logger
}

func NewAssignmentGuard(store Store, logger *zap.Logger) *AssignmentGuard {
	return &AssignmentGuard{store: store, logger: logger}
}

// Assign moves the employee into the room, or clears the assignment when
// roomID is nil. The whole check-and-write runs in one store transaction:
// either the assignment is written or nothing changes.
func (g *AssignmentGuard) Assign(ctx context.Context, employeeID uuid.UUID, roomID *uuid.UUID) (*model.Employee, error) {
	var updated *model.Employee
	err := g.store.InTx(ctx, func(tx Tx) error {
		employee, err := tx.Employee(ctx, employeeID)
		if err != nil {
			return err
		}

		if roomID == nil {
			updated, err = tx.SetEmployeeRoom(ctx, employee.ID, nil)
			return err
		}

		if _, err := tx.Room(ctx, *roomID); err != nil {
			return err
		}

		// Excluding the employee itself keeps re-saving an existing
		// assignment idempotent.
		holders, err := tx.ActiveEmployeesInRoom(ctx, *roomID, employee.ID)
		if err != nil {
			return err
		}
		if len(holders) > 0 {
			return RoomOccupiedError(*roomID, &holders[0])
		}

		updated, err = tx.SetEmployeeRoom(ctx, employee.ID, roomID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if roomID != nil {
		g.logger.Info("employee assigned to room",
			zap.String("employee_id", updated.EmployeeID),
			zap.String("room_id", roomID.String()))
	} else {
		g.logger.Info("employee assignment cleared",
			zap.String("employee_id", updated.EmployeeID))
	}
	return updated, nil
}
