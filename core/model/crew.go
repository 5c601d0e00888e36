package model

import "time"

// Shift classifies a crew as day or night. Vehicle conflict checks are
// scoped by shift: the same vehicle may serve a day crew and a night crew
// on one date.
type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
)

// Crew is a row on the dispatch board.
type Crew struct {
	ID      string
	Name    string
	DepotID string
	Shift   Shift

	// ArchivedAt is nil while the crew is active. Archiving is a soft
	// delete: items referencing an archived crew stay valid for history.
	ArchivedAt *time.Time
}

// Active reports whether the crew has not been archived.
func (c Crew) Active() bool { return c.ArchivedAt == nil }

// ActiveCrewIDs returns the set of crew ids that have not been archived.
func ActiveCrewIDs(crews []Crew) map[string]bool {
	ids := make(map[string]bool, len(crews))
	for _, c := range crews {
		if c.Active() {
			ids[c.ID] = true
		}
	}
	return ids
}
