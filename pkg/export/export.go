// Package export renders schedule items for tools outside the board:
// JSON and CSV for spreadsheets, iCalendar for crew phones.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/depotops/crewboard/core/model"
)

// WriteJSON writes the items to w in JSON format.
func WriteJSON(w io.Writer, items []model.ScheduleItem) error {
	enc := json.NewEncoder(w)
	return enc.Encode(items)
}

// WriteCSV writes the items to w in CSV format.
func WriteCSV(w io.Writer, items []model.ScheduleItem) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "type", "date", "crew_id", "customer", "job_number", "address", "start_time", "duration_hours", "employee_id", "vehicle_id", "note"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, it := range items {
		rec := []string{
			it.ID,
			string(it.Type),
			it.Day().Format("2006-01-02"),
			it.CrewID,
			it.Customer,
			it.JobNumber,
			it.Address,
			it.StartTime,
			strconv.FormatFloat(it.DurationHours, 'f', -1, 64),
			it.EmployeeID,
			it.VehicleID,
			it.NoteContent,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteICS writes booked jobs to w as an iCalendar feed. Free job
// ghosts, person assignments and notes carry no customer-facing times
// and are skipped. The event summary carries the crew name so feeds for
// several crews stay readable on one phone.
func WriteICS(w io.Writer, items []model.ScheduleItem, crews []model.Crew) error {
	names := make(map[string]string, len(crews))
	for _, c := range crews {
		names[c.ID] = c.Name
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//crewboard//dispatch board//EN")
	for _, it := range items {
		if it.Type != model.ItemJob || it.IsFreeJob() || it.JobStatus == model.JobCancelled {
			continue
		}
		start, err := eventStart(it)
		if err != nil {
			return fmt.Errorf("item %s: %w", it.ID, err)
		}
		dur := it.DurationHours
		if dur <= 0 {
			dur = 1
		}
		ev := cal.AddEvent(it.ID)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(time.Duration(dur * float64(time.Hour))))
		summary := it.Customer
		if name := names[it.CrewID]; name != "" {
			summary = it.Customer + " (" + name + ")"
		}
		ev.SetSummary(summary)
		ev.SetLocation(it.Address)
		if it.JobNumber != "" {
			ev.SetDescription("job " + it.JobNumber)
		}
	}
	return cal.SerializeTo(w)
}

func eventStart(it model.ScheduleItem) (time.Time, error) {
	day := it.Day()
	if it.StartTime == "" {
		return day, nil
	}
	t, err := time.Parse("15:04", it.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start time %q: %w", it.StartTime, err)
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
