// Package conflict reports double-booked employees and vehicles.
//
// The check is advisory: callers decide whether a conflict disables a
// control or blocks a mutation outright.
package conflict

import (
	"time"

	"github.com/depotops/crewboard/core/model"
)

// ResourceKind selects which resource a check targets.
type ResourceKind string

const (
	KindEmployee ResourceKind = "employee"
	KindVehicle  ResourceKind = "vehicle"
)

// Reason distinguishes why a resource is unavailable. Callers surface
// different messages for a sick employee than for one already rostered.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonInactive  Reason = "inactive"   // global status is not active
	ReasonSlotTaken Reason = "slot_taken" // another live assignment claims the slot
	ReasonUnknown   Reason = "unknown"    // resource id not in the snapshot
)

// Result is the outcome of a conflict check.
type Result struct {
	Conflict bool
	Reason   Reason
	// BlockingItemID identifies the assignment that claims the slot when
	// Reason is ReasonSlotTaken.
	BlockingItemID string
}

// Detector checks resource usage against a board snapshot.
type Detector struct {
	Board *model.Board
}

// New returns a Detector over the given snapshot.
func New(b *model.Board) *Detector { return &Detector{Board: b} }

// Check reports whether the resource is unavailable for the given date and
// shift. excludeItemID lets an edit-in-place skip the item being edited.
//
// Employees conflict with any live person assignment on the same date
// whose crew is still active, regardless of shift. Vehicles conflict only
// within the same shift: a day crew and a night crew may each claim the
// same vehicle on one date.
func (d *Detector) Check(kind ResourceKind, resourceID string, date time.Time, shift model.Shift, excludeItemID string) Result {
	switch kind {
	case KindEmployee:
		emp, ok := d.Board.EmployeeByID(resourceID)
		if !ok {
			return Result{Conflict: true, Reason: ReasonUnknown}
		}
		if !emp.Assignable() {
			return Result{Conflict: true, Reason: ReasonInactive}
		}
		return d.employeeSlot(resourceID, date, excludeItemID)
	case KindVehicle:
		veh, ok := d.Board.VehicleByID(resourceID)
		if !ok {
			return Result{Conflict: true, Reason: ReasonUnknown}
		}
		if !veh.Assignable() {
			return Result{Conflict: true, Reason: ReasonInactive}
		}
		return d.vehicleSlot(resourceID, date, shift, excludeItemID)
	}
	return Result{}
}

func (d *Detector) employeeSlot(employeeID string, date time.Time, exclude string) Result {
	active := model.ActiveCrewIDs(d.Board.Crews)
	for _, it := range d.Board.Items {
		if it.ID == exclude || !it.IsPerson() {
			continue
		}
		if it.EmployeeID != employeeID || !it.SameDay(date) {
			continue
		}
		// Assignments on archived crews are history and never block.
		if !active[it.CrewID] {
			continue
		}
		return Result{Conflict: true, Reason: ReasonSlotTaken, BlockingItemID: it.ID}
	}
	return Result{}
}

func (d *Detector) vehicleSlot(vehicleID string, date time.Time, shift model.Shift, exclude string) Result {
	active := model.ActiveCrewIDs(d.Board.Crews)
	for _, it := range d.Board.Items {
		if it.ID == exclude || it.Type != model.ItemOperative {
			continue
		}
		if it.VehicleID != vehicleID || !it.SameDay(date) {
			continue
		}
		if !active[it.CrewID] {
			continue
		}
		if d.Board.CrewShift(it.CrewID) != shift {
			continue
		}
		return Result{Conflict: true, Reason: ReasonSlotTaken, BlockingItemID: it.ID}
	}
	return Result{}
}
