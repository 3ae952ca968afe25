package core

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

// memStore is an in-memory Store used by the core tests. InTx stages every
// write on a copy and commits only when the callback succeeds, matching the
// all-or-nothing behavior of the database-backed store.
type memStore struct {
	mu        sync.Mutex
	now       func() time.Time
	employees map[uuid.UUID]model.Employee
	units     map[uuid.UUID]model.HousingUnit
	rooms     map[uuid.UUID]model.Room
	items     map[uuid.UUID]model.InventoryItem
	reports   map[uuid.UUID]model.DamageReport
}

func newMemStore() *memStore {
	return &memStore{
		now:       time.Now,
		employees: make(map[uuid.UUID]model.Employee),
		units:     make(map[uuid.UUID]model.HousingUnit),
		rooms:     make(map[uuid.UUID]model.Room),
		items:     make(map[uuid.UUID]model.InventoryItem),
		reports:   make(map[uuid.UUID]model.DamageReport),
	}
}

func (s *memStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &memTx{
		now:       s.now,
		employees: cloneMap(s.employees),
		units:     cloneMap(s.units),
		rooms:     cloneMap(s.rooms),
		items:     cloneMap(s.items),
		reports:   cloneMap(s.reports),
	}
	if err := fn(staged); err != nil {
		return err
	}

	s.employees = staged.employees
	s.units = staged.units
	s.rooms = staged.rooms
	s.items = staged.items
	s.reports = staged.reports
	return nil
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *memStore) addEmployee(e model.Employee) model.Employee {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.employees[e.ID] = e
	return e
}

func (s *memStore) addUnit(u model.HousingUnit) model.HousingUnit {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.units[u.ID] = u
	return u
}

func (s *memStore) addRoom(r model.Room) model.Room {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.rooms[r.ID] = r
	return r
}

func (s *memStore) addItem(i model.InventoryItem) model.InventoryItem {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	s.items[i.ID] = i
	return i
}

func (s *memStore) employee(id uuid.UUID) model.Employee {
	return s.employees[id]
}

func (s *memStore) item(id uuid.UUID) model.InventoryItem {
	return s.items[id]
}

func (s *memStore) report(id uuid.UUID) model.DamageReport {
	return s.reports[id]
}

type memTx struct {
	now       func() time.Time
	employees map[uuid.UUID]model.Employee
	units     map[uuid.UUID]model.HousingUnit
	rooms     map[uuid.UUID]model.Room
	items     map[uuid.UUID]model.InventoryItem
	reports   map[uuid.UUID]model.DamageReport
}

func (t *memTx) Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	employee, ok := t.employees[id]
	if !ok {
		return nil, NotFoundError("employee", id)
	}
	return &employee, nil
}

func (t *memTx) ActiveEmployeesInRoom(ctx context.Context, roomID uuid.UUID, exclude uuid.UUID) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range t.employees {
		if e.ID != exclude && e.Occupies(roomID) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (t *memTx) AssignedEmployees(ctx context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range t.employees {
		if e.AssignedRoomID != nil {
			result = append(result, e)
		}
	}
	return result, nil
}

func (t *memTx) SetEmployeeRoom(ctx context.Context, id uuid.UUID, roomID *uuid.UUID) (*model.Employee, error) {
	employee, ok := t.employees[id]
	if !ok {
		return nil, NotFoundError("employee", id)
	}
	employee.AssignedRoomID = roomID
	employee.UpdatedAt = t.now()
	t.employees[id] = employee
	return &employee, nil
}

func (t *memTx) HousingUnit(ctx context.Context, id uuid.UUID) (*model.HousingUnit, error) {
	unit, ok := t.units[id]
	if !ok {
		return nil, NotFoundError("housing unit", id)
	}
	return &unit, nil
}

func (t *memTx) Room(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room, ok := t.rooms[id]
	if !ok {
		return nil, NotFoundError("room", id)
	}
	return &room, nil
}

func (t *memTx) RoomsInUnit(ctx context.Context, unitID uuid.UUID) ([]model.Room, error) {
	var result []model.Room
	for _, r := range t.rooms {
		if r.HousingUnitID == unitID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RoomNumber < result[j].RoomNumber
	})
	return result, nil
}

func (t *memTx) Rooms(ctx context.Context) ([]model.Room, error) {
	result := make([]model.Room, 0, len(t.rooms))
	for _, r := range t.rooms {
		result = append(result, r)
	}
	return result, nil
}

func (t *memTx) Item(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := t.items[id]
	if !ok {
		return nil, NotFoundError("inventory item", id)
	}
	return &item, nil
}

func (t *memTx) SetItemCondition(ctx context.Context, id uuid.UUID, condition model.ItemCondition) error {
	item, ok := t.items[id]
	if !ok {
		return NotFoundError("inventory item", id)
	}
	item.Condition = condition
	item.UpdatedAt = t.now()
	t.items[id] = item
	return nil
}

func (t *memTx) Report(ctx context.Context, id uuid.UUID) (*model.DamageReport, error) {
	report, ok := t.reports[id]
	if !ok {
		return nil, NotFoundError("damage report", id)
	}
	return &report, nil
}

func (t *memTx) CreateReport(ctx context.Context, report *model.DamageReport) error {
	t.reports[report.ID] = *report
	return nil
}

func (t *memTx) SetReportStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus) (*model.DamageReport, error) {
	report, ok := t.reports[id]
	if !ok {
		return nil, NotFoundError("damage report", id)
	}
	report.Status = status
	report.UpdatedAt = t.now()
	t.reports[id] = report
	return &report, nil
}

func (t *memTx) OpenReportsForItem(ctx context.Context, itemID uuid.UUID, exclude uuid.UUID) ([]model.DamageReport, error) {
	var result []model.DamageReport
	for _, r := range t.reports {
		if r.ItemID == itemID && r.ID != exclude && r.Status.Open() {
			result = append(result, r)
		}
	}
	return result, nil
}

func (t *memTx) OpenReports(ctx context.Context) ([]model.DamageReport, error) {
	var result []model.DamageReport
	for _, r := range t.reports {
		if r.Status.Open() {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (t *memTx) CountReportsByStatus(ctx context.Context) (map[model.ReportStatus]int64, error) {
	counts := map[model.ReportStatus]int64{
		model.ReportPending:    0,
		model.ReportInProgress: 0,
		model.ReportResolved:   0,
	}
	for _, r := range t.reports {
		counts[r.Status]++
	}
	return counts, nil
}
