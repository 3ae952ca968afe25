package model

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "on-leave"
)

func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeOnLeave:
		return true
	default:
		return false
	}
}

// Employee occupies AssignedRoom only while Status is active. Changing status
// away from active does not clear AssignedRoomID; stale pointers on inactive
// employees are expected and read around via the active filter.
type Employee struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	EmployeeID     string         `gorm:"not null;uniqueIndex"`
	Name           string         `gorm:"not null"`
	Department     string
	Position       string
	Email          string         `gorm:"uniqueIndex"`
	Phone          string
	AssignedRoomID *uuid.UUID     `gorm:"type:uuid;index"`
	AssignedRoom   *Room          `gorm:"foreignKey:AssignedRoomID"`
	Status         EmployeeStatus `gorm:"type:varchar(20);default:'active';index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e *Employee) Occupies(roomID uuid.UUID) bool {
	return e.Status == EmployeeActive && e.AssignedRoomID != nil && *e.AssignedRoomID == roomID
}
