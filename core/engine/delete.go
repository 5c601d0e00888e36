package engine

import (
	"fmt"

	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/expand"
	"github.com/depotops/crewboard/core/model"
)

// Delete removes an item, or with a range period the item and every later
// occurrence of the same placement on the crew: same type, same identity
// (jobs by customer and address, people by employee), dated inside the
// period. Past-dated occurrences are never deleted.
func (e *Engine) Delete(itemID string, period expand.Period) (BatchResult, error) {
	var res BatchResult
	item, ok := e.board.ItemByID(itemID)
	if !ok {
		return res, fmt.Errorf("unknown item %s", itemID)
	}
	today := e.clock.Today()

	if item.Day().Before(today) {
		res.Skipped = append(res.Skipped, Skipped{ItemID: item.ID, Date: item.Date, Reason: SkipPastDate})
		return res, nil
	}
	res.Mutations = append(res.Mutations, deleteMutation(item))
	if period.Kind == expand.Single {
		return res, nil
	}

	dates, err := expand.Expand(item.Day(), period, e.expandOptions(false, period))
	if err != nil {
		return BatchResult{}, fmt.Errorf("expand period: %w", err)
	}
	inRange := make(map[string]bool, len(dates))
	for _, d := range dates {
		inRange[d.Format("2006-01-02")] = true
	}

	for _, cand := range e.board.Items {
		if cand.ID == item.ID || cand.CrewID != item.CrewID || cand.Type != item.Type {
			continue
		}
		if !sameIdentity(item, cand) {
			continue
		}
		if !inRange[calendar.DateOnly(cand.Date).Format("2006-01-02")] {
			continue
		}
		if cand.Day().Before(today) {
			res.Skipped = append(res.Skipped, Skipped{ItemID: cand.ID, Date: cand.Date, Reason: SkipPastDate})
			continue
		}
		res.Mutations = append(res.Mutations, deleteMutation(cand))
	}
	return res, nil
}

// deleteMutation carries the cell key so appliers can evict the item
// from the cell's display order as well.
func deleteMutation(it model.ScheduleItem) Mutation {
	return Mutation{Kind: MutationDelete, ItemID: it.ID, CellKey: CellKey(it.CrewID, it.Date)}
}

// sameIdentity reports whether two items of equal type describe the same
// placement for range-delete purposes.
func sameIdentity(a, b model.ScheduleItem) bool {
	switch a.Type {
	case model.ItemJob:
		return a.Customer == b.Customer && a.Address == b.Address
	case model.ItemOperative, model.ItemAssistant:
		return a.EmployeeID == b.EmployeeID
	case model.ItemNote:
		return a.NoteContent == b.NoteContent
	}
	return false
}
