package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitOccupied    UnitStatus = "occupied"
	UnitMaintenance UnitStatus = "maintenance"
)

func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitAvailable, UnitOccupied, UnitMaintenance:
		return true
	default:
		return false
	}
}

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
	RoomStudio RoomType = "studio"
	RoomOneBHK RoomType = "1BHK"
)

func (t RoomType) IsValid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomTriple, RoomStudio, RoomOneBHK:
		return true
	default:
		return false
	}
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	default:
		return false
	}
}

type HousingUnit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `gorm:"not null;uniqueIndex"`
	UnitType    string
	Address     string
	Capacity    int            `gorm:"not null;default:1"`
	Status      UnitStatus     `gorm:"type:varchar(20);default:'available';index"`
	Description string
	PhotoURLs   pq.StringArray `gorm:"type:text[]"`
	Rooms       []Room         `gorm:"foreignKey:HousingUnitID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// Room carries an advisory Status set by editors. Actual occupancy is always
// derived from active employee assignments; the two may disagree, and
// maintenance wins for display.
type Room struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HousingUnitID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_room_number"`
	HousingUnit   *HousingUnit    `gorm:"foreignKey:HousingUnitID"`
	RoomNumber    string          `gorm:"not null;uniqueIndex:idx_unit_room_number"`
	RoomType      RoomType        `gorm:"type:varchar(20);not null"`
	Capacity      int             `gorm:"not null;default:1"`
	Status        RoomStatus      `gorm:"type:varchar(20);default:'available';index"`
	Amenities     pq.StringArray  `gorm:"type:text[]"`
	Description   string
	Items         []InventoryItem `gorm:"foreignKey:RoomID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
