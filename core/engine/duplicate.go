package engine

import (
	"fmt"

	"github.com/depotops/crewboard/core/expand"
)

// Duplicate clones an item, either once onto its own date or once per
// date of the selected period. Clones landing before today are skipped
// and reported.
func (e *Engine) Duplicate(itemID string, period expand.Period) (BatchResult, error) {
	var res BatchResult
	item, ok := e.board.ItemByID(itemID)
	if !ok {
		return res, fmt.Errorf("unknown item %s", itemID)
	}
	today := e.clock.Today()

	if period.Kind == expand.Single {
		if item.Day().Before(today) {
			res.Skipped = append(res.Skipped, Skipped{ItemID: item.ID, Date: item.Date, Reason: SkipPastDate})
			return res, nil
		}
		clone := item
		clone.ID = e.newID()
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationCreate, Item: clone})
		return res, nil
	}

	dates, err := expand.Expand(item.Day(), period, e.expandOptions(false, period))
	if err != nil {
		return BatchResult{}, fmt.Errorf("expand period: %w", err)
	}
	for _, d := range dates {
		clone := item
		clone.ID = e.newID()
		clone.Date = d
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationCreate, Item: clone})
	}
	sortMutations(res.Mutations)
	return res, nil
}
