package model

// Board is a read-only snapshot of the collections an engine call works
// against. The engine never mutates a Board; it emits proposed mutations
// and leaves persistence to the caller.
type Board struct {
	Items     []ScheduleItem
	Crews     []Crew
	Employees []Employee
	Vehicles  []Vehicle
}

// CrewByID returns the crew with the given id, if present.
func (b *Board) CrewByID(id string) (Crew, bool) {
	for _, c := range b.Crews {
		if c.ID == id {
			return c, true
		}
	}
	return Crew{}, false
}

// EmployeeByID returns the employee with the given id, if present.
func (b *Board) EmployeeByID(id string) (Employee, bool) {
	for _, e := range b.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// VehicleByID returns the vehicle with the given id, if present.
func (b *Board) VehicleByID(id string) (Vehicle, bool) {
	for _, v := range b.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ItemByID returns the item with the given id, if present.
func (b *Board) ItemByID(id string) (ScheduleItem, bool) {
	for _, it := range b.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ScheduleItem{}, false
}

// CrewShift returns the shift of the crew the item sits on. Items on
// unknown crews default to the day shift.
func (b *Board) CrewShift(crewID string) Shift {
	if c, ok := b.CrewByID(crewID); ok {
		return c.Shift
	}
	return ShiftDay
}
