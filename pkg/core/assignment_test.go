package core

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

func TestAssignToVacantRoom(t *testing.T) {
	store := newMemStore()
	room := store.addRoom(model.Room{RoomNumber: "R201", RoomType: model.RoomSingle, Capacity: 1})
	employee := store.addEmployee(model.Employee{EmployeeID: "E001", Name: "Asha", Status: model.EmployeeActive})

	guard := NewAssignmentGuard(store, zap.NewNop())
	updated, err := guard.Assign(context.Background(), employee.ID, &room.ID)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if updated.AssignedRoomID == nil || *updated.AssignedRoomID != room.ID {
		t.Fatalf("expected assignment to %s, got %v", room.ID, updated.AssignedRoomID)
	}
}

func TestAssignConflictNamesHolder(t *testing.T) {
	store := newMemStore()
	room := store.addRoom(model.Room{RoomNumber: "R201", RoomType: model.RoomSingle, Capacity: 2})
	otherRoom := store.addRoom(model.Room{RoomNumber: "R202", RoomType: model.RoomSingle, Capacity: 1})
	holder := store.addEmployee(model.Employee{
		EmployeeID: "E001", Name: "Asha", Status: model.EmployeeActive, AssignedRoomID: &room.ID,
	})
	challenger := store.addEmployee(model.Employee{
		EmployeeID: "E002", Name: "Ben", Status: model.EmployeeActive, AssignedRoomID: &otherRoom.ID,
	})

	guard := NewAssignmentGuard(store, zap.NewNop())
	_, err := guard.Assign(context.Background(), challenger.ID, &room.ID)
	if !IsCode(err, CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	var coreErr *Error
	if !asError(err, &coreErr) {
		t.Fatalf("expected core error, got %T", err)
	}
	if want := holder.EmployeeID; !contains(coreErr.Message, want) {
		t.Fatalf("expected conflict message to name %s, got %q", want, coreErr.Message)
	}

	// Declared capacity 2 does not matter; the room is exclusive.
	// The challenger's prior assignment must be untouched.
	after := store.employee(challenger.ID)
	if after.AssignedRoomID == nil || *after.AssignedRoomID != otherRoom.ID {
		t.Fatalf("challenger assignment changed on failed assign: %v", after.AssignedRoomID)
	}
}

func TestAssignIdempotentResave(t *testing.T) {
	store := newMemStore()
	room := store.addRoom(model.Room{RoomNumber: "R201", RoomType: model.RoomSingle, Capacity: 1})
	employee := store.addEmployee(model.Employee{
		EmployeeID: "E001", Name: "Asha", Status: model.EmployeeActive, AssignedRoomID: &room.ID,
	})

	guard := NewAssignmentGuard(store, zap.NewNop())
	updated, err := guard.Assign(context.Background(), employee.ID, &room.ID)
	if err != nil {
		t.Fatalf("re-saving the same assignment should succeed, got %v", err)
	}
	if updated.AssignedRoomID == nil || *updated.AssignedRoomID != room.ID {
		t.Fatalf("expected assignment kept, got %v", updated.AssignedRoomID)
	}
}

func TestAssignNilClearsUnconditionally(t *testing.T) {
	store := newMemStore()
	room := store.addRoom(model.Room{RoomNumber: "R201", RoomType: model.RoomSingle, Capacity: 1})
	employee := store.addEmployee(model.Employee{
		EmployeeID: "E001", Name: "Asha", Status: model.EmployeeOnLeave, AssignedRoomID: &room.ID,
	})

	guard := NewAssignmentGuard(store, zap.NewNop())
	updated, err := guard.Assign(context.Background(), employee.ID, nil)
	if err != nil {
		t.Fatalf("Assign(nil) error: %v", err)
	}
	if updated.AssignedRoomID != nil {
		t.Fatalf("expected cleared assignment, got %v", updated.AssignedRoomID)
	}
}

func TestAssignInactiveHolderDoesNotBlock(t *testing.T) {
	store := newMemStore()
	room := store.addRoom(model.Room{RoomNumber: "R201", RoomType: model.RoomSingle, Capacity: 1})
	store.addEmployee(model.Employee{
		EmployeeID: "E001", Name: "Asha", Status: model.EmployeeOnLeave, AssignedRoomID: &room.ID,
	})
	employee := store.addEmployee(model.Employee{EmployeeID: "E002", Name: "Ben", Status: model.EmployeeActive})

	guard := NewAssignmentGuard(store, zap.NewNop())
	if _, err := guard.Assign(context.Background(), employee.ID, &room.ID); err != nil {
		t.Fatalf("on-leave holder should not block, got %v", err)
	}
}

func TestAssignUnknownEmployeeOrRoom(t *testing.T) {
	store := newMemStore()
	room := store.addRoom(model.Room{RoomNumber: "R201", RoomType: model.RoomSingle, Capacity: 1})
	employee := store.addEmployee(model.Employee{EmployeeID: "E001", Name: "Asha", Status: model.EmployeeActive})

	guard := NewAssignmentGuard(store, zap.NewNop())

	if _, err := guard.Assign(context.Background(), uuid.New(), &room.ID); !IsCode(err, CodeNotFound) {
		t.Fatalf("expected not found for unknown employee, got %v", err)
	}

	ghost := uuid.New()
	if _, err := guard.Assign(context.Background(), employee.ID, &ghost); !IsCode(err, CodeNotFound) {
		t.Fatalf("expected not found for unknown room, got %v", err)
	}
}

// Random sequences of assign/clear operations must never leave two active
// employees in the same room.
func TestAssignSequencesKeepRoomsExclusive(t *testing.T) {
	store := newMemStore()
	rng := rand.New(rand.NewSource(42))

	var rooms []model.Room
	for i := 0; i < 5; i++ {
		rooms = append(rooms, store.addRoom(model.Room{
			RoomNumber: string(rune('A' + i)), RoomType: model.RoomSingle, Capacity: 1,
		}))
	}
	var employees []model.Employee
	for i := 0; i < 8; i++ {
		employees = append(employees, store.addEmployee(model.Employee{
			EmployeeID: string(rune('0' + i)), Name: "emp", Status: model.EmployeeActive,
		}))
	}

	guard := NewAssignmentGuard(store, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		employee := employees[rng.Intn(len(employees))]
		if rng.Intn(4) == 0 {
			if _, err := guard.Assign(ctx, employee.ID, nil); err != nil {
				t.Fatalf("clear failed: %v", err)
			}
		} else {
			room := rooms[rng.Intn(len(rooms))]
			_, err := guard.Assign(ctx, employee.ID, &room.ID)
			if err != nil && !IsCode(err, CodeConflict) {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		holders := make(map[uuid.UUID]int)
		for _, e := range employees {
			current := store.employee(e.ID)
			if current.Status == model.EmployeeActive && current.AssignedRoomID != nil {
				holders[*current.AssignedRoomID]++
			}
		}
		for roomID, count := range holders {
			if count > 1 {
				t.Fatalf("room %s held by %d active employees after %d ops", roomID, count, i+1)
			}
		}
	}
}
