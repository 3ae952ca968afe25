package core

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

type RoomOccupancy string

const (
	RoomVacant       RoomOccupancy = "vacant"
	RoomHasOccupants RoomOccupancy = "occupied"
)

type UnitOccupancy string

const (
	UnitEmpty   UnitOccupancy = "empty"
	UnitPartial UnitOccupancy = "partial"
	UnitFull    UnitOccupancy = "full"
)

// RoomOccupants filters the employee snapshot down to active occupants of the
// room, ordered by employee_id ascending as a deterministic tie-break.
func RoomOccupants(roomID uuid.UUID, employees []model.Employee) []model.Employee {
	occupants := make([]model.Employee, 0)
	for _, emp := range employees {
		if emp.Occupies(roomID) {
			occupants = append(occupants, emp)
		}
	}
	sort.Slice(occupants, func(i, j int) bool {
		return occupants[i].EmployeeID < occupants[j].EmployeeID
	})
	return occupants
}

func RoomOccupancyState(roomID uuid.UUID, employees []model.Employee) RoomOccupancy {
	if len(RoomOccupants(roomID, employees)) > 0 {
		return RoomHasOccupants
	}
	return RoomVacant
}

// UnitOccupancyState classifies a unit over its rooms: full iff every room has
// at least one active occupant, empty iff none do. A unit with no rooms is
// empty.
func UnitOccupancyState(rooms []model.Room, employees []model.Employee) UnitOccupancy {
	occupied := 0
	for _, room := range rooms {
		if RoomOccupancyState(room.ID, employees) == RoomHasOccupants {
			occupied++
		}
	}
	switch {
	case occupied == 0:
		return UnitEmpty
	case occupied == len(rooms):
		return UnitFull
	default:
		return UnitPartial
	}
}

type UnitOccupancySummary struct {
	UnitID        uuid.UUID     `json:"unit_id"`
	State         UnitOccupancy `json:"state"`
	TotalRooms    int           `json:"total_rooms"`
	OccupiedRooms int           `json:"occupied_rooms"`
	VacantRooms   int           `json:"vacant_rooms"`
}

func SummarizeUnit(unitID uuid.UUID, rooms []model.Room, employees []model.Employee) UnitOccupancySummary {
	summary := UnitOccupancySummary{
		UnitID:     unitID,
		State:      UnitOccupancyState(rooms, employees),
		TotalRooms: len(rooms),
	}
	for _, room := range rooms {
		if RoomOccupancyState(room.ID, employees) == RoomHasOccupants {
			summary.OccupiedRooms++
		} else {
			summary.VacantRooms++
		}
	}
	return summary
}

type RoomStats struct {
	TotalRooms         int `json:"total_rooms"`
	Occupied           int `json:"occupied"`
	Available          int `json:"available"`
	Maintenance        int `json:"maintenance"`
	OccupiedPercent    int `json:"occupied_percent"`
	AvailablePercent   int `json:"available_percent"`
	MaintenancePercent int `json:"maintenance_percent"`
}

// FacilityRoomStats builds the room-status distribution for dashboard charts.
// A room marked maintenance counts as maintenance even if someone occupies it;
// otherwise the derived occupancy decides. Each percentage is rounded
// independently, so the three need not sum to exactly 100.
func FacilityRoomStats(rooms []model.Room, employees []model.Employee) RoomStats {
	stats := RoomStats{TotalRooms: len(rooms)}
	for _, room := range rooms {
		switch {
		case room.Status == model.RoomMaintenance:
			stats.Maintenance++
		case RoomOccupancyState(room.ID, employees) == RoomHasOccupants:
			stats.Occupied++
		default:
			stats.Available++
		}
	}
	if stats.TotalRooms > 0 {
		stats.OccupiedPercent = roundPercent(stats.Occupied, stats.TotalRooms)
		stats.AvailablePercent = roundPercent(stats.Available, stats.TotalRooms)
		stats.MaintenancePercent = roundPercent(stats.Maintenance, stats.TotalRooms)
	}
	return stats
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// OccupancyResolver is the read path over live assignment data. It derives
// occupancy on demand from entity snapshots and stores nothing.
type OccupancyResolver struct {
	store Store
}

func NewOccupancyResolver(store Store) *OccupancyResolver {
	return &OccupancyResolver{store: store}
}

type RoomOccupancyResult struct {
	RoomID    uuid.UUID        `json:"room_id"`
	State     RoomOccupancy    `json:"state"`
	Occupants []model.Employee `json:"occupants"`
}

func (r *OccupancyResolver) RoomOccupancy(ctx context.Context, roomID uuid.UUID) (*RoomOccupancyResult, error) {
	var result *RoomOccupancyResult
	err := r.store.InTx(ctx, func(tx Tx) error {
		if _, err := tx.Room(ctx, roomID); err != nil {
			return err
		}
		employees, err := tx.AssignedEmployees(ctx)
		if err != nil {
			return err
		}
		result = &RoomOccupancyResult{
			RoomID:    roomID,
			State:     RoomOccupancyState(roomID, employees),
			Occupants: RoomOccupants(roomID, employees),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *OccupancyResolver) UnitOccupancy(ctx context.Context, unitID uuid.UUID) (*UnitOccupancySummary, error) {
	var summary UnitOccupancySummary
	err := r.store.InTx(ctx, func(tx Tx) error {
		if _, err := tx.HousingUnit(ctx, unitID); err != nil {
			return err
		}
		rooms, err := tx.RoomsInUnit(ctx, unitID)
		if err != nil {
			return err
		}
		employees, err := tx.AssignedEmployees(ctx)
		if err != nil {
			return err
		}
		summary = SummarizeUnit(unitID, rooms, employees)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *OccupancyResolver) FacilityStats(ctx context.Context) (*RoomStats, error) {
	var stats RoomStats
	err := r.store.InTx(ctx, func(tx Tx) error {
		rooms, err := tx.Rooms(ctx)
		if err != nil {
			return err
		}
		employees, err := tx.AssignedEmployees(ctx)
		if err != nil {
			return err
		}
		stats = FacilityRoomStats(rooms, employees)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
