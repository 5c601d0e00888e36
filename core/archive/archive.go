// Package archive plans crew removal. Archiving is a soft delete: it sets
// the crew's archive timestamp and, at most, reassigns a strict subset of
// items to a neighbouring crew. No schedule item is ever deleted by an
// archive, whatever the outcome.
package archive

import (
	"fmt"
	"time"

	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/model"
)

// BlockedError refuses an archive because future items exist and no
// earlier crew on the same shift can take them.
type BlockedError struct {
	CrewID string
	Count  int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("crew %s: %d future items and no previous crew on the same shift", e.CrewID, e.Count)
}

// BoundaryViolationError signals a migration candidate dated on or before
// the viewed week boundary. It marks a boundary-computation bug, not bad
// user input, and fails the whole batch.
type BoundaryViolationError struct {
	ItemID   string
	Date     time.Time
	Boundary time.Time
}

func (e *BoundaryViolationError) Error() string {
	return fmt.Sprintf("item %s dated %s at or before viewed week end %s: refusing to migrate batch",
		e.ItemID, e.Date.Format("2006-01-02"), e.Boundary.Format("2006-01-02"))
}

// Plan is the reviewed outcome of an archive request. FutureItems are the
// items strictly after the viewed week that would move if the user
// confirms migration; PreviousCrewID is the migration target.
type Plan struct {
	CrewID         string
	ViewedWeekEnd  time.Time
	FutureItems    []model.ScheduleItem
	PreviousCrewID string
}

// HasMigration reports whether the plan offers the archive-and-migrate
// choice.
func (p Plan) HasMigration() bool { return len(p.FutureItems) > 0 }

// PlanArchive partitions the crew's items against the currently viewed
// week and locates the migration target.
//
// The boundary is the viewed week, not today: items dated on or before
// viewedWeekEnd are out of consideration entirely, even when they are
// chronologically in the future. Notes never block an archive. If future
// items exist but no earlier crew shares the shift, the archive is
// refused with a BlockedError.
func PlanArchive(b *model.Board, crewID string, viewedWeekStart, viewedWeekEnd time.Time) (Plan, error) {
	crew, ok := b.CrewByID(crewID)
	if !ok {
		return Plan{}, fmt.Errorf("unknown crew %s", crewID)
	}
	boundary := calendar.DateOnly(viewedWeekEnd)
	plan := Plan{CrewID: crewID, ViewedWeekEnd: boundary}

	for _, it := range b.Items {
		if it.CrewID != crewID || it.Type == model.ItemNote {
			continue
		}
		if !it.Day().After(boundary) {
			continue
		}
		plan.FutureItems = append(plan.FutureItems, it)
	}
	if len(plan.FutureItems) == 0 {
		return plan, nil
	}

	prev, ok := previousCrewOnShift(b.Crews, crew)
	if !ok {
		return Plan{}, &BlockedError{CrewID: crewID, Count: len(plan.FutureItems)}
	}
	plan.PreviousCrewID = prev.ID
	return plan, nil
}

// previousCrewOnShift finds the nearest earlier active crew with the same
// shift classification, in display order.
func previousCrewOnShift(crews []model.Crew, crew model.Crew) (model.Crew, bool) {
	idx := -1
	for i, c := range crews {
		if c.ID == crew.ID {
			idx = i
			break
		}
	}
	for i := idx - 1; i >= 0; i-- {
		c := crews[i]
		if c.Active() && c.Shift == crew.Shift {
			return c, true
		}
	}
	return model.Crew{}, false
}

// MigrationMoves returns the crew reassignments for a confirmed
// archive-and-migrate. The viewed-week boundary is re-verified on every
// item: one violation fails the whole batch rather than partially
// applying, since it means the plan was built against a different
// boundary than it is being applied with.
func MigrationMoves(plan Plan) ([]model.ScheduleItem, error) {
	if plan.PreviousCrewID == "" && len(plan.FutureItems) > 0 {
		return nil, &BlockedError{CrewID: plan.CrewID, Count: len(plan.FutureItems)}
	}
	moves := make([]model.ScheduleItem, 0, len(plan.FutureItems))
	for _, it := range plan.FutureItems {
		if !it.Day().After(plan.ViewedWeekEnd) {
			return nil, &BoundaryViolationError{ItemID: it.ID, Date: it.Date, Boundary: plan.ViewedWeekEnd}
		}
		moved := it
		moved.CrewID = plan.PreviousCrewID
		moves = append(moves, moved)
	}
	return moves, nil
}
