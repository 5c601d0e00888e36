package engine

import (
	"fmt"

	"github.com/depotops/crewboard/core/model"
	"github.com/depotops/crewboard/core/series"
)

// Edit applies a typed patch to an item, or with group scope to its whole
// job series. Past items accept nothing but a color change, and only when
// they are jobs; other patches on past items are policy no-ops.
func (e *Engine) Edit(itemID string, patch model.Patch, scope Scope) (BatchResult, error) {
	var res BatchResult
	item, ok := e.board.ItemByID(itemID)
	if !ok {
		return res, fmt.Errorf("unknown item %s", itemID)
	}
	if patch.AppliesTo() != item.Type {
		return res, fmt.Errorf("patch for %s applied to %s item %s", patch.AppliesTo(), item.Type, itemID)
	}

	members := []model.ScheduleItem{item}
	if scope == ScopeGroup {
		members = series.FindSeries(item, e.board.Items)
	}
	today := e.clock.Today()
	for _, m := range members {
		if m.Day().Before(today) {
			if m.Type != model.ItemJob || !patch.ColorOnly() {
				res.Skipped = append(res.Skipped, Skipped{ItemID: m.ID, Date: m.Date, Reason: SkipFieldLock})
				continue
			}
		}
		updated, err := patch.Apply(m)
		if err != nil {
			return BatchResult{}, err
		}
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationUpdate, Item: updated})
	}
	sortMutations(res.Mutations)
	return res, nil
}
