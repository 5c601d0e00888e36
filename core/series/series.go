// Package series resolves the job-number grouping used for coordinated
// edits: delete, recolor or move applied to every job sharing a number.
// Series membership never participates in conflict checks.
package series

import "github.com/depotops/crewboard/core/model"

// FindSeries returns every job sharing the item's job number, the input
// included. Non-job items and jobs without a number group only with
// themselves.
func FindSeries(item model.ScheduleItem, items []model.ScheduleItem) []model.ScheduleItem {
	if item.Type != model.ItemJob || item.JobNumber == "" {
		return []model.ScheduleItem{item}
	}
	var out []model.ScheduleItem
	for _, it := range items {
		if it.Type == model.ItemJob && it.JobNumber == item.JobNumber {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		// The item itself may not be part of the snapshot yet.
		return []model.ScheduleItem{item}
	}
	return out
}

// Size returns the member count of the item's series. Callers present the
// "this one / all N" prompt only when the size exceeds one.
func Size(item model.ScheduleItem, items []model.ScheduleItem) int {
	return len(FindSeries(item, items))
}
