package model

import (
	"time"

	"github.com/google/uuid"
)

type ItemCategory string

const (
	CategoryFurniture   ItemCategory = "furniture"
	CategoryAppliance   ItemCategory = "appliance"
	CategoryElectronics ItemCategory = "electronics"
	CategoryFixture     ItemCategory = "fixture"
	CategoryBedding     ItemCategory = "bedding"
	CategoryKitchenware ItemCategory = "kitchenware"
	CategoryOther       ItemCategory = "other"
)

func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryFurniture, CategoryAppliance, CategoryElectronics,
		CategoryFixture, CategoryBedding, CategoryKitchenware, CategoryOther:
		return true
	default:
		return false
	}
}

type ItemCondition string

const (
	ConditionExcellent ItemCondition = "excellent"
	ConditionGood      ItemCondition = "good"
	ConditionFair      ItemCondition = "fair"
	ConditionPoor      ItemCondition = "poor"
	ConditionDamaged   ItemCondition = "damaged"
	ConditionRepairing ItemCondition = "repairing"
)

func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair,
		ConditionPoor, ConditionDamaged, ConditionRepairing:
		return true
	default:
		return false
	}
}

// UnderRepair reports whether the condition is one of the two values owned by
// the damage workflow. Items in these states carry at least one open report.
func (c ItemCondition) UnderRepair() bool {
	return c == ConditionDamaged || c == ConditionRepairing
}

type InventoryItem struct {
	ID       uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoomID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Room     *Room        `gorm:"foreignKey:RoomID"`
	Name     string       `gorm:"not null"`
	Category ItemCategory `gorm:"type:varchar(30);not null"`
	// CategoryName is a free-text label used when Category is "other".
	CategoryName   string
	Quantity       int            `gorm:"not null;default:1"`
	Unit           string
	Condition      ItemCondition  `gorm:"type:varchar(20);default:'good';index"`
	Description    string
	PurchaseDate   *time.Time
	WarrantyExpiry *time.Time
	Reports        []DamageReport `gorm:"foreignKey:ItemID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type DamageType string

const (
	DamageStructural DamageType = "structural"
	DamageElectrical DamageType = "electrical"
	DamagePlumbing   DamageType = "plumbing"
	DamageFurniture  DamageType = "furniture"
	DamageAppliance  DamageType = "appliance"
	DamageOther      DamageType = "other"
)

func (t DamageType) IsValid() bool {
	switch t {
	case DamageStructural, DamageElectrical, DamagePlumbing,
		DamageFurniture, DamageAppliance, DamageOther:
		return true
	default:
		return false
	}
}

type DamageSeverity string

const (
	SeverityMinor    DamageSeverity = "minor"
	SeverityModerate DamageSeverity = "moderate"
	SeveritySevere   DamageSeverity = "severe"
	SeverityCritical DamageSeverity = "critical"
)

func (s DamageSeverity) IsValid() bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	default:
		return false
	}
}

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in_progress"
	ReportResolved   ReportStatus = "resolved"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportPending, ReportInProgress, ReportResolved:
		return true
	default:
		return false
	}
}

// Open reports whether the report still drives the item's condition.
func (s ReportStatus) Open() bool {
	return s == ReportPending || s == ReportInProgress
}

type DamageReport struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ItemID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Item          *InventoryItem `gorm:"foreignKey:ItemID"`
	DamageType    DamageType     `gorm:"type:varchar(30);not null"`
	Severity      DamageSeverity `gorm:"type:varchar(20);not null"`
	Description   string
	ReportedBy    string
	DamageDate    time.Time
	EstimatedCost *float64
	RepairNotes   string
	Status        ReportStatus   `gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
