package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateFreeJobPlaceholder(t *testing.T) {
	it := NewFreeJob("j1", "c1", "d1", date(2024, 4, 1), "white")
	if err := it.Validate(); err != nil {
		t.Fatalf("valid free job rejected: %v", err)
	}
	it.Customer = "Acme"
	if err := it.Validate(); err == nil {
		t.Fatalf("free job with real customer accepted")
	}
}

func TestValidateAssistantVehicle(t *testing.T) {
	it := ScheduleItem{ID: "a1", Type: ItemAssistant, CrewID: "c1", Date: date(2024, 4, 1), EmployeeID: "e1", VehicleID: "v1"}
	if err := it.Validate(); err == nil {
		t.Fatalf("assistant with vehicle accepted")
	}
}

func TestVisibleInCellFreeSingleton(t *testing.T) {
	cell := []ScheduleItem{
		NewFreeJob("f1", "c1", "d1", date(2024, 4, 1), ""),
		{ID: "j1", Type: ItemJob, JobStatus: JobBooked, Customer: "Acme"},
		NewFreeJob("f2", "c1", "d1", date(2024, 4, 1), ""),
		NewFreeJob("f3", "c1", "d1", date(2024, 4, 1), ""),
		{ID: "j2", Type: ItemJob, JobStatus: JobCancelled, Customer: "Borg"},
	}
	vis := VisibleInCell(cell)
	if len(vis) != 3 {
		t.Fatalf("expected 3 visible items, got %d", len(vis))
	}
	free := 0
	for _, it := range vis {
		if it.IsFreeJob() {
			free++
		}
	}
	if free != 1 {
		t.Fatalf("expected exactly one free job surfaced, got %d", free)
	}
	if vis[0].ID != "f1" {
		t.Fatalf("expected first free job to survive, got %s", vis[0].ID)
	}
}

func TestJobPatchBooksFreeJob(t *testing.T) {
	it := NewFreeJob("j1", "c1", "d1", date(2024, 4, 1), "")
	cust, addr := "Acme", "1 High St"
	out, err := JobPatch{Customer: &cust, Address: &addr}.Apply(it)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.JobStatus != JobBooked {
		t.Fatalf("expected booked, got %s", out.JobStatus)
	}
}

func TestJobPatchNoRevertToFree(t *testing.T) {
	it := ScheduleItem{ID: "j1", Type: ItemJob, JobStatus: JobBooked, Customer: "Acme", Address: "1 High St"}
	free := JobFree
	if _, err := (JobPatch{Status: &free}).Apply(it); err == nil {
		t.Fatalf("expected revert-to-free rejection")
	}
	cancelled := JobCancelled
	out, err := JobPatch{Status: &cancelled}.Apply(it)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if out.JobStatus != JobCancelled {
		t.Fatalf("expected cancelled, got %s", out.JobStatus)
	}
}

func TestJobPatchColorOnly(t *testing.T) {
	c := "red"
	if !(JobPatch{Color: &c}).ColorOnly() {
		t.Fatalf("color-only patch not recognised")
	}
	cust := "Acme"
	if (JobPatch{Color: &c, Customer: &cust}).ColorOnly() {
		t.Fatalf("mixed patch reported color-only")
	}
}

func TestActiveCrewIDs(t *testing.T) {
	now := time.Now()
	crews := []Crew{
		{ID: "c1", Shift: ShiftDay},
		{ID: "c2", Shift: ShiftNight, ArchivedAt: &now},
	}
	ids := ActiveCrewIDs(crews)
	if !ids["c1"] || ids["c2"] {
		t.Fatalf("unexpected active set: %v", ids)
	}
}
