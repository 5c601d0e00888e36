package model

import (
	"fmt"
	"time"
)

// ItemType identifies what a schedule item represents on the board.
type ItemType string

const (
	ItemJob       ItemType = "job"
	ItemOperative ItemType = "operative"
	ItemAssistant ItemType = "assistant"
	ItemNote      ItemType = "note"
)

// JobStatus is the booking state of a job item.
type JobStatus string

const (
	JobFree      JobStatus = "free"
	JobBooked    JobStatus = "booked"
	JobCancelled JobStatus = "cancelled"
)

// FreePlaceholder is the customer and address value carried by a free job
// ghost. A free job always has both fields set to this value.
const FreePlaceholder = "Free"

// ScheduleItem is the atomic schedulable unit placed on a crew/date cell.
// The type is fixed at creation; there is no conversion between types.
type ScheduleItem struct {
	ID     string
	Type   ItemType
	Date   time.Time // calendar date, time-of-day not significant
	CrewID string    // may reference an archived crew for history
	DepotID string

	// Job fields.
	JobStatus      JobStatus
	Customer       string
	JobNumber      string
	Address        string
	ProjectManager string
	StartTime      string // display text, e.g. "08:00"
	OnsiteTime     string
	DurationHours  float64
	Color          string

	// Operative/assistant fields. VehicleID is only meaningful for operatives.
	EmployeeID string
	VehicleID  string

	// Note field.
	NoteContent string
}

// IsPerson reports whether the item assigns an employee.
func (it ScheduleItem) IsPerson() bool {
	return it.Type == ItemOperative || it.Type == ItemAssistant
}

// IsFreeJob reports whether the item is a free job ghost.
func (it ScheduleItem) IsFreeJob() bool {
	return it.Type == ItemJob && it.JobStatus == JobFree
}

// Day returns the item date truncated to midnight in its location.
func (it ScheduleItem) Day() time.Time {
	y, m, d := it.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, it.Date.Location())
}

// SameDay reports whether the item falls on the given calendar date.
func (it ScheduleItem) SameDay(t time.Time) bool {
	y1, m1, d1 := it.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Validate checks that the item is structurally sound for its type.
func (it ScheduleItem) Validate() error {
	if it.CrewID == "" {
		return fmt.Errorf("item %s: crew id is required", it.ID)
	}
	if it.Date.IsZero() {
		return fmt.Errorf("item %s: date is required", it.ID)
	}
	switch it.Type {
	case ItemJob:
		if it.JobStatus == JobFree && (it.Customer != FreePlaceholder || it.Address != FreePlaceholder) {
			return fmt.Errorf("item %s: free job must carry %q customer and address", it.ID, FreePlaceholder)
		}
	case ItemOperative, ItemAssistant:
		if it.EmployeeID == "" {
			return fmt.Errorf("item %s: employee id is required", it.ID)
		}
		if it.Type == ItemAssistant && it.VehicleID != "" {
			return fmt.Errorf("item %s: assistants cannot carry a vehicle", it.ID)
		}
	case ItemNote:
	default:
		return fmt.Errorf("item %s: unknown type %q", it.ID, it.Type)
	}
	return nil
}

// NewFreeJob builds the ghost placeholder paired with an operative
// assignment. Color carries the vehicle's category color.
func NewFreeJob(id, crewID, depotID string, date time.Time, color string) ScheduleItem {
	return ScheduleItem{
		ID:        id,
		Type:      ItemJob,
		Date:      date,
		CrewID:    crewID,
		DepotID:   depotID,
		JobStatus: JobFree,
		Customer:  FreePlaceholder,
		Address:   FreePlaceholder,
		Color:     color,
	}
}

// VisibleInCell filters the items of one crew/date cell for display.
// Storage may hold any number of free job ghosts for a cell but only the
// first is surfaced; everything else passes through unchanged.
func VisibleInCell(items []ScheduleItem) []ScheduleItem {
	out := make([]ScheduleItem, 0, len(items))
	freeSeen := false
	for _, it := range items {
		if it.IsFreeJob() {
			if freeSeen {
				continue
			}
			freeSeen = true
		}
		out = append(out, it)
	}
	return out
}
