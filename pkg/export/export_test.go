package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/depotops/crewboard/core/model"
)

func sampleItems() []model.ScheduleItem {
	date := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	return []model.ScheduleItem{
		{ID: "job-1", Type: model.ItemJob, Date: date, CrewID: "crew-1",
			JobStatus: model.JobBooked, Customer: "Acme", Address: "12 Dock Rd",
			JobNumber: "J-1042", StartTime: "08:00", DurationHours: 2.5},
		{ID: "ghost-1", Type: model.ItemJob, Date: date, CrewID: "crew-1",
			JobStatus: model.JobFree, Customer: model.FreePlaceholder, Address: model.FreePlaceholder},
		{ID: "op-1", Type: model.ItemOperative, Date: date, CrewID: "crew-1",
			EmployeeID: "emp-7", VehicleID: "veh-3"},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleItems()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out []model.ScheduleItem
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 || out[0].Customer != "Acme" {
		t.Fatalf("unexpected output %#v", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleItems()); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("rows %d", len(records))
	}
	if records[0][0] != "id" {
		t.Fatalf("header %v", records[0])
	}
	if records[1][4] != "Acme" || records[1][8] != "2.5" {
		t.Fatalf("job row %v", records[1])
	}
	if records[3][9] != "emp-7" {
		t.Fatalf("operative row %v", records[3])
	}
}

func TestWriteICSOnlyBookedJobs(t *testing.T) {
	crews := []model.Crew{{ID: "crew-1", Name: "North", Shift: model.ShiftDay}}
	var buf bytes.Buffer
	if err := WriteICS(&buf, sampleItems(), crews); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "BEGIN:VEVENT") != 1 {
		t.Fatalf("expected one event, got:\n%s", out)
	}
	for _, want := range []string{"SUMMARY:Acme (North)", "LOCATION:12 Dock Rd", "DESCRIPTION:job J-1042", "DTSTART:20240410T080000Z"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteICSFallsBackWithoutCrewName(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, sampleItems(), nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "SUMMARY:Acme\r\n") {
		t.Fatalf("expected bare customer summary in:\n%s", buf.String())
	}
}

func TestWriteICSRejectsBadStartTime(t *testing.T) {
	items := []model.ScheduleItem{{
		ID: "job-1", Type: model.ItemJob,
		Date:      time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		CrewID:    "crew-1",
		JobStatus: model.JobBooked, Customer: "Acme", Address: "12 Dock Rd",
		StartTime: "8 o'clock",
	}}
	if err := WriteICS(&bytes.Buffer{}, items, nil); err == nil {
		t.Fatal("expected error")
	}
}
