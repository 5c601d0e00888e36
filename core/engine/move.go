package engine

import (
	"fmt"
	"time"

	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/model"
	"github.com/depotops/crewboard/core/series"
)

// Scope selects whether an operation touches one item or its whole job
// series.
type Scope string

const (
	ScopeSingle Scope = "single"
	ScopeGroup  Scope = "group"
)

// Move relocates an item to another crew/date cell, or reorders it within
// its current cell. A drop on the item's own cell is a reorder: only the
// per-cell display order changes, the item's date and crew do not. Moves
// of past items and moves onto past dates are policy no-ops.
func (e *Engine) Move(itemID, newCrewID string, newDate time.Time, position int, scope Scope) (BatchResult, error) {
	var res BatchResult
	item, ok := e.board.ItemByID(itemID)
	if !ok {
		return res, fmt.Errorf("unknown item %s", itemID)
	}
	today := e.clock.Today()
	newDate = calendar.DateOnly(newDate)
	if item.Day().Before(today) {
		res.Skipped = append(res.Skipped, Skipped{ItemID: item.ID, Date: item.Date, Reason: SkipPastDate})
		return res, nil
	}
	if newDate.Before(today) {
		res.Skipped = append(res.Skipped, Skipped{ItemID: item.ID, Date: newDate, Reason: SkipPastTarget})
		return res, nil
	}

	sameCell := item.CrewID == newCrewID && item.SameDay(newDate)
	if sameCell {
		if position < 0 {
			// Dropped back where it was picked up.
			return res, nil
		}
		res.Mutations = append(res.Mutations, Mutation{
			Kind:     MutationReorder,
			ItemID:   item.ID,
			CellKey:  CellKey(item.CrewID, newDate),
			Position: position,
		})
		return res, nil
	}

	members := []model.ScheduleItem{item}
	if scope == ScopeGroup {
		members = series.FindSeries(item, e.board.Items)
	}
	// Series members shift by the same delta so their relative spacing
	// survives the move.
	delta := int(newDate.Sub(item.Day()).Hours() / 24)
	for _, m := range members {
		target := m.Day().AddDate(0, 0, delta)
		if m.Day().Before(today) {
			res.Skipped = append(res.Skipped, Skipped{ItemID: m.ID, Date: m.Date, Reason: SkipPastDate})
			continue
		}
		if target.Before(today) {
			res.Skipped = append(res.Skipped, Skipped{ItemID: m.ID, Date: target, Reason: SkipPastTarget})
			continue
		}
		moved := m
		moved.CrewID = newCrewID
		moved.Date = target
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationUpdate, Item: moved})
	}
	sortMutations(res.Mutations)
	return res, nil
}
