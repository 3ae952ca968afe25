package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestOccupies(t *testing.T) {
	roomID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name     string
		employee Employee
		want     bool
	}{
		{"active in room", Employee{Status: EmployeeActive, AssignedRoomID: &roomID}, true},
		{"active elsewhere", Employee{Status: EmployeeActive, AssignedRoomID: &otherID}, false},
		{"active unassigned", Employee{Status: EmployeeActive}, false},
		{"on leave in room", Employee{Status: EmployeeOnLeave, AssignedRoomID: &roomID}, false},
		{"inactive in room", Employee{Status: EmployeeInactive, AssignedRoomID: &roomID}, false},
	}
	for _, tt := range tests {
		if got := tt.employee.Occupies(roomID); got != tt.want {
			t.Errorf("%s: Occupies() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestConditionUnderRepair(t *testing.T) {
	for _, c := range []ItemCondition{ConditionDamaged, ConditionRepairing} {
		if !c.UnderRepair() {
			t.Errorf("%s: expected under repair", c)
		}
	}
	for _, c := range []ItemCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor} {
		if c.UnderRepair() {
			t.Errorf("%s: expected not under repair", c)
		}
	}
}

func TestReportStatusOpen(t *testing.T) {
	if !ReportPending.Open() || !ReportInProgress.Open() {
		t.Error("pending and in_progress reports are open")
	}
	if ReportResolved.Open() {
		t.Error("resolved reports are not open")
	}
}

func TestEnumValidation(t *testing.T) {
	if !UnitAvailable.IsValid() || UnitStatus("demolished").IsValid() {
		t.Error("unit status validation")
	}
	if !RoomDouble.IsValid() || RoomType("penthouse").IsValid() {
		t.Error("room type validation")
	}
	if !RoomMaintenance.IsValid() || RoomStatus("haunted").IsValid() {
		t.Error("room status validation")
	}
	if !EmployeeOnLeave.IsValid() || EmployeeStatus("retired").IsValid() {
		t.Error("employee status validation")
	}
	if !CategoryKitchenware.IsValid() || ItemCategory("vehicle").IsValid() {
		t.Error("item category validation")
	}
	if !ConditionRepairing.IsValid() || ItemCondition("destroyed").IsValid() {
		t.Error("item condition validation")
	}
	if !DamagePlumbing.IsValid() || DamageType("cosmic").IsValid() {
		t.Error("damage type validation")
	}
	if !SeverityCritical.IsValid() || DamageSeverity("apocalyptic").IsValid() {
		t.Error("severity validation")
	}
	if !ReportInProgress.IsValid() || ReportStatus("archived").IsValid() {
		t.Error("report status validation")
	}
}
