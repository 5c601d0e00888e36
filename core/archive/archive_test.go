package archive

import (
	"errors"
	"testing"
	"time"

	"github.com/depotops/crewboard/core/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func board() *model.Board {
	return &model.Board{
		Crews: []model.Crew{
			{ID: "night0", Name: "Night 0", Shift: model.ShiftNight},
			{ID: "day1", Name: "Day 1", Shift: model.ShiftDay},
			{ID: "night1", Name: "Night 1", Shift: model.ShiftNight},
		},
		Items: []model.ScheduleItem{
			{ID: "in-week", Type: model.ItemJob, JobStatus: model.JobBooked, CrewID: "night1", Date: day(2024, 4, 3), Customer: "Acme", Address: "1 High St"},
			{ID: "after", Type: model.ItemJob, JobStatus: model.JobBooked, CrewID: "night1", Date: day(2024, 4, 10), Customer: "Acme", Address: "1 High St"},
			{ID: "note", Type: model.ItemNote, CrewID: "night1", Date: day(2024, 4, 12), NoteContent: "van keys"},
			{ID: "other-crew", Type: model.ItemJob, JobStatus: model.JobBooked, CrewID: "day1", Date: day(2024, 4, 12), Customer: "Borg", Address: "2 Low St"},
		},
	}
}

func TestPlanArchivePartitionsByViewedWeek(t *testing.T) {
	plan, err := PlanArchive(board(), "night1", day(2024, 4, 1), day(2024, 4, 5))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.FutureItems) != 1 || plan.FutureItems[0].ID != "after" {
		t.Fatalf("expected only the 04-10 job, got %+v", plan.FutureItems)
	}
	if plan.PreviousCrewID != "night0" {
		t.Fatalf("expected night0 as migration target, got %q", plan.PreviousCrewID)
	}
}

func TestPlanArchiveNotesNeverBlock(t *testing.T) {
	b := &model.Board{
		Crews: []model.Crew{{ID: "night1", Shift: model.ShiftNight}},
		Items: []model.ScheduleItem{
			{ID: "note", Type: model.ItemNote, CrewID: "night1", Date: day(2024, 4, 20), NoteContent: "late note"},
		},
	}
	plan, err := PlanArchive(b, "night1", day(2024, 4, 1), day(2024, 4, 5))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.HasMigration() {
		t.Fatalf("a lone note must not produce future items: %+v", plan.FutureItems)
	}
}

func TestPlanArchiveBlockedWithoutPreviousCrew(t *testing.T) {
	b := board()
	// night0 archived: night1 has no earlier night crew left.
	archived := day(2024, 1, 1)
	b.Crews[0].ArchivedAt = &archived
	_, err := PlanArchive(b, "night1", day(2024, 4, 1), day(2024, 4, 5))
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected BlockedError, got %v", err)
	}
	if blocked.Count != 1 {
		t.Fatalf("expected blocking count 1, got %d", blocked.Count)
	}
}

func TestPlanArchiveShiftMismatchSkipped(t *testing.T) {
	// day1 sits between night0 and night1 but is the wrong shift; the
	// target must skip over it.
	plan, err := PlanArchive(board(), "night1", day(2024, 4, 1), day(2024, 4, 5))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.PreviousCrewID == "day1" {
		t.Fatalf("migration target must share the shift")
	}
}

func TestPlanArchiveNoFutureItems(t *testing.T) {
	plan, err := PlanArchive(board(), "night1", day(2024, 4, 8), day(2024, 4, 12))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.HasMigration() {
		t.Fatalf("viewed week covering all items should leave nothing to migrate")
	}
}

func TestMigrationMovesReassignsCrewOnly(t *testing.T) {
	plan, err := PlanArchive(board(), "night1", day(2024, 4, 1), day(2024, 4, 5))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	moves, err := MigrationMoves(plan)
	if err != nil {
		t.Fatalf("moves: %v", err)
	}
	if len(moves) != 1 || moves[0].ID != "after" || moves[0].CrewID != "night0" {
		t.Fatalf("unexpected moves: %+v", moves)
	}
	if !moves[0].Date.Equal(day(2024, 4, 10)) {
		t.Fatalf("migration must not touch dates")
	}
}

func TestMigrationRefusesWholeBatchOnBoundaryViolation(t *testing.T) {
	plan, err := PlanArchive(board(), "night1", day(2024, 4, 1), day(2024, 4, 5))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	// Simulate a plan built against a different boundary.
	plan.FutureItems = append(plan.FutureItems, model.ScheduleItem{
		ID: "stale", Type: model.ItemJob, CrewID: "night1", Date: day(2024, 4, 4),
	})
	moves, err := MigrationMoves(plan)
	var violation *BoundaryViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected BoundaryViolationError, got %v", err)
	}
	if moves != nil {
		t.Fatalf("no partial migration on violation, got %+v", moves)
	}
}
