package conflict

import (
	"testing"
	"time"

	"github.com/depotops/crewboard/core/model"
)

func day(d int) time.Time {
	return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC)
}

func board() *model.Board {
	archived := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.Board{
		Crews: []model.Crew{
			{ID: "day1", Shift: model.ShiftDay},
			{ID: "day2", Shift: model.ShiftDay},
			{ID: "night1", Shift: model.ShiftNight},
			{ID: "old", Shift: model.ShiftDay, ArchivedAt: &archived},
		},
		Employees: []model.Employee{
			{ID: "e1", Status: model.EmployeeActive, JobRole: model.RoleOperative},
			{ID: "e2", Status: model.EmployeeSick, JobRole: model.RoleOperative},
		},
		Vehicles: []model.Vehicle{
			{ID: "v1", Status: model.VehicleActive},
			{ID: "v2", Status: model.VehicleOffRoad},
		},
		Items: []model.ScheduleItem{
			{ID: "i1", Type: model.ItemOperative, CrewID: "day1", Date: day(10), EmployeeID: "e1", VehicleID: "v1"},
			{ID: "i2", Type: model.ItemOperative, CrewID: "old", Date: day(11), EmployeeID: "e1"},
		},
	}
}

func TestEmployeeSlotTaken(t *testing.T) {
	d := New(board())
	res := d.Check(KindEmployee, "e1", day(10), model.ShiftDay, "")
	if !res.Conflict || res.Reason != ReasonSlotTaken || res.BlockingItemID != "i1" {
		t.Fatalf("expected slot_taken via i1, got %+v", res)
	}
	// Employee scope ignores shift: a night crew still conflicts.
	res = d.Check(KindEmployee, "e1", day(10), model.ShiftNight, "")
	if !res.Conflict {
		t.Fatalf("employee check must be shift-agnostic")
	}
}

func TestEmployeeArchivedCrewNeverBlocks(t *testing.T) {
	d := New(board())
	res := d.Check(KindEmployee, "e1", day(11), model.ShiftDay, "")
	if res.Conflict {
		t.Fatalf("assignment on archived crew blocked a new one: %+v", res)
	}
}

func TestEmployeeInactiveDistinctFromSlotTaken(t *testing.T) {
	d := New(board())
	res := d.Check(KindEmployee, "e2", day(20), model.ShiftDay, "")
	if !res.Conflict || res.Reason != ReasonInactive {
		t.Fatalf("expected inactive reason, got %+v", res)
	}
}

func TestEmployeeExcludeSelf(t *testing.T) {
	d := New(board())
	res := d.Check(KindEmployee, "e1", day(10), model.ShiftDay, "i1")
	if res.Conflict {
		t.Fatalf("edit-in-place conflicted with itself: %+v", res)
	}
}

func TestVehicleShiftIndependence(t *testing.T) {
	d := New(board())
	// v1 is claimed by day1 on the 10th: same shift conflicts.
	res := d.Check(KindVehicle, "v1", day(10), model.ShiftDay, "")
	if !res.Conflict || res.Reason != ReasonSlotTaken {
		t.Fatalf("same-shift vehicle reuse not reported: %+v", res)
	}
	// The night shift may claim it independently.
	res = d.Check(KindVehicle, "v1", day(10), model.ShiftNight, "")
	if res.Conflict {
		t.Fatalf("cross-shift vehicle use reported as conflict: %+v", res)
	}
}

func TestVehicleInactive(t *testing.T) {
	d := New(board())
	res := d.Check(KindVehicle, "v2", day(20), model.ShiftDay, "")
	if !res.Conflict || res.Reason != ReasonInactive {
		t.Fatalf("expected inactive vehicle, got %+v", res)
	}
}

func TestUnknownResource(t *testing.T) {
	d := New(board())
	if res := d.Check(KindEmployee, "ghost", day(10), model.ShiftDay, ""); res.Reason != ReasonUnknown {
		t.Fatalf("expected unknown reason, got %+v", res)
	}
}
