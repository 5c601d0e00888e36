package engine

import (
	"fmt"

	"github.com/depotops/crewboard/core/expand"
	"github.com/depotops/crewboard/core/model"
)

// Create validates a new placement and expands it over the selected
// period. Creating an operative who carries a vehicle auto-generates a
// paired free job ghost per date, reproducing "this crew is on shift with
// this vehicle all period" as one action.
func (e *Engine) Create(item model.ScheduleItem, period expand.Period) (BatchResult, error) {
	var res BatchResult
	if item.ID == "" {
		item.ID = e.newID()
	}
	if err := item.Validate(); err != nil {
		return res, err
	}
	today := e.clock.Today()
	if item.Day().Before(today) {
		res.Skipped = append(res.Skipped, Skipped{ItemID: item.ID, Date: item.Date, Reason: SkipPastDate})
		return res, nil
	}

	autoPair := item.Type == model.ItemOperative && item.EmployeeID != "" && item.VehicleID != ""

	if item.Type == model.ItemJob && item.StartTime == "" {
		item.StartTime = e.suggestStart(e.lastJobInCell(item.CrewID, item), item)
	}
	res.Mutations = append(res.Mutations, Mutation{Kind: MutationCreate, Item: item})

	var pairColor string
	if autoPair {
		if v, ok := e.board.VehicleByID(item.VehicleID); ok {
			pairColor = v.Color
		}
		ghost := model.NewFreeJob(e.newID(), item.CrewID, item.DepotID, item.Day(), pairColor)
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationCreate, Item: ghost})
	}

	dates, err := expand.Expand(item.Day(), period, e.expandOptions(autoPair, period))
	if err != nil {
		return BatchResult{}, fmt.Errorf("expand period: %w", err)
	}
	for _, d := range dates {
		clone := item
		clone.ID = e.newID()
		clone.Date = d
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationCreate, Item: clone})
		if autoPair {
			ghost := model.NewFreeJob(e.newID(), item.CrewID, item.DepotID, d, pairColor)
			res.Mutations = append(res.Mutations, Mutation{Kind: MutationCreate, Item: ghost})
		}
	}
	sortMutations(res.Mutations)
	return res, nil
}

// expandOptions derives the expansion settings from the board config.
// Weekday-only stepping applies when auto-pairing across month-scale
// periods: weekend cells stay clear of generated shift pairs.
func (e *Engine) expandOptions(autoPair bool, period expand.Period) expand.Options {
	weekdayOnly := autoPair &&
		(period.Kind == expand.RemainderMonth || period.Kind == expand.NextMonths || period.Kind == expand.RemainderYear)
	return expand.Options{
		ViewDays:     e.cfg.ViewDays,
		WeekStartsOn: e.cfg.WeekStartsOn,
		WeekdayOnly:  weekdayOnly,
		Clock:        e.clock,
	}
}

// lastJobInCell returns the latest existing booked job in the item's
// cell, used as the travel-time origin for start suggestions.
func (e *Engine) lastJobInCell(crewID string, it model.ScheduleItem) *model.ScheduleItem {
	var prior *model.ScheduleItem
	for i := range e.board.Items {
		cand := e.board.Items[i]
		if cand.Type != model.ItemJob || cand.JobStatus != model.JobBooked {
			continue
		}
		if cand.CrewID != crewID || !cand.SameDay(it.Date) {
			continue
		}
		if prior == nil || cand.StartTime > prior.StartTime {
			prior = &e.board.Items[i]
		}
	}
	return prior
}
