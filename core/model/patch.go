package model

import "fmt"

// Patch is a closed set of per-type field updates. Using one variant per
// item type keeps the past-item rule (only a job's color may change once
// the date has passed) checkable without inspecting dynamic field maps.
type Patch interface {
	// AppliesTo returns the item type the patch targets.
	AppliesTo() ItemType
	// ColorOnly reports whether the patch touches nothing but the color.
	ColorOnly() bool
	// Apply returns a copy of the item with the patch applied.
	Apply(ScheduleItem) (ScheduleItem, error)
}

// JobPatch updates job item fields. Nil fields are left untouched.
type JobPatch struct {
	Customer       *string
	Address        *string
	JobNumber      *string
	ProjectManager *string
	StartTime      *string
	OnsiteTime     *string
	DurationHours  *float64
	Color          *string
	Status         *JobStatus
}

func (p JobPatch) AppliesTo() ItemType { return ItemJob }

func (p JobPatch) ColorOnly() bool {
	return p.Color != nil &&
		p.Customer == nil && p.Address == nil && p.JobNumber == nil &&
		p.ProjectManager == nil && p.StartTime == nil && p.OnsiteTime == nil &&
		p.DurationHours == nil && p.Status == nil
}

// Apply updates the job, enforcing the one-way status machine:
// free -> booked (customer and address provided), booked -> cancelled,
// free -> cancelled. A job never returns to free.
func (p JobPatch) Apply(it ScheduleItem) (ScheduleItem, error) {
	if it.Type != ItemJob {
		return it, fmt.Errorf("job patch applied to %s item %s", it.Type, it.ID)
	}
	if p.Customer != nil {
		it.Customer = *p.Customer
	}
	if p.Address != nil {
		it.Address = *p.Address
	}
	if p.JobNumber != nil {
		it.JobNumber = *p.JobNumber
	}
	if p.ProjectManager != nil {
		it.ProjectManager = *p.ProjectManager
	}
	if p.StartTime != nil {
		it.StartTime = *p.StartTime
	}
	if p.OnsiteTime != nil {
		it.OnsiteTime = *p.OnsiteTime
	}
	if p.DurationHours != nil {
		it.DurationHours = *p.DurationHours
	}
	if p.Color != nil {
		it.Color = *p.Color
	}
	if p.Status != nil {
		if *p.Status == JobFree && it.JobStatus != JobFree {
			return it, fmt.Errorf("job %s: cannot revert %s to free", it.ID, it.JobStatus)
		}
		it.JobStatus = *p.Status
	} else if it.JobStatus == JobFree && realValue(it.Customer) && realValue(it.Address) {
		it.JobStatus = JobBooked
	}
	return it, nil
}

func realValue(s string) bool { return s != "" && s != FreePlaceholder }

// PersonPatch updates operative/assistant item fields.
type PersonPatch struct {
	Type       ItemType // ItemOperative or ItemAssistant
	EmployeeID *string
	VehicleID  *string
}

func (p PersonPatch) AppliesTo() ItemType { return p.Type }

// ColorOnly is always false: person items carry no editable color.
func (p PersonPatch) ColorOnly() bool { return false }

func (p PersonPatch) Apply(it ScheduleItem) (ScheduleItem, error) {
	if !it.IsPerson() {
		return it, fmt.Errorf("person patch applied to %s item %s", it.Type, it.ID)
	}
	if p.EmployeeID != nil {
		it.EmployeeID = *p.EmployeeID
	}
	if p.VehicleID != nil {
		if it.Type != ItemOperative {
			return it, fmt.Errorf("item %s: only operatives carry vehicles", it.ID)
		}
		it.VehicleID = *p.VehicleID
	}
	return it, nil
}

// NotePatch updates a note's content.
type NotePatch struct {
	Content *string
}

func (p NotePatch) AppliesTo() ItemType { return ItemNote }

func (p NotePatch) ColorOnly() bool { return false }

func (p NotePatch) Apply(it ScheduleItem) (ScheduleItem, error) {
	if it.Type != ItemNote {
		return it, fmt.Errorf("note patch applied to %s item %s", it.Type, it.ID)
	}
	if p.Content != nil {
		it.NoteContent = *p.Content
	}
	return it, nil
}
