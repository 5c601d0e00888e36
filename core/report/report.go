// Package report computes crew utilization statistics over a date window.
package report

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/model"
)

// CrewUtilization summarizes one crew's job load across a window.
type CrewUtilization struct {
	CrewID      string    `json:"crew_id"`
	CrewName    string    `json:"crew_name"`
	Days        int       `json:"days"`
	TotalJobs   int       `json:"total_jobs"`
	MeanPerDay  float64   `json:"mean_per_day"`
	StdDev      float64   `json:"std_dev"`
	BusiestDay  time.Time `json:"busiest_day"`
	BusiestJobs int       `json:"busiest_jobs"`
}

// Utilization computes per-crew job statistics for [from, to]. Free job
// ghosts and cancelled jobs do not count as load. Archived crews are
// included so historical windows stay reportable.
func Utilization(b *model.Board, from, to time.Time) []CrewUtilization {
	from, to = calendar.DateOnly(from), calendar.DateOnly(to)
	if to.Before(from) {
		from, to = to, from
	}
	days := int(to.Sub(from).Hours()/24) + 1

	out := make([]CrewUtilization, 0, len(b.Crews))
	for _, crew := range b.Crews {
		counts := make([]float64, days)
		for _, it := range b.Items {
			if it.CrewID != crew.ID || it.Type != model.ItemJob {
				continue
			}
			if it.IsFreeJob() || it.JobStatus == model.JobCancelled {
				continue
			}
			d := it.Day()
			if d.Before(from) || d.After(to) {
				continue
			}
			counts[int(d.Sub(from).Hours()/24)]++
		}

		u := CrewUtilization{CrewID: crew.ID, CrewName: crew.Name, Days: days}
		for i, c := range counts {
			u.TotalJobs += int(c)
			if int(c) > u.BusiestJobs {
				u.BusiestJobs = int(c)
				u.BusiestDay = from.AddDate(0, 0, i)
			}
		}
		u.MeanPerDay = stat.Mean(counts, nil)
		u.StdDev = stat.StdDev(counts, nil)
		out = append(out, u)
	}
	return out
}
