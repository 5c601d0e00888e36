package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/depotops/crewboard/core/engine"
	"github.com/depotops/crewboard/core/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func job(id, crewID string, date time.Time) model.ScheduleItem {
	return model.ScheduleItem{
		ID:        id,
		Type:      model.ItemJob,
		Date:      date,
		CrewID:    crewID,
		JobStatus: model.JobBooked,
		Customer:  "Acme",
		Address:   "12 Dock Rd",
	}
}

func TestMemoryStoreItemLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	it := job("it-1", "crew-1", day(2024, 4, 10))
	require.NoError(t, s.CreateItem(ctx, it))
	require.Error(t, s.CreateItem(ctx, it), "duplicate id must be rejected")

	it.Customer = "Borealis"
	require.NoError(t, s.UpdateItem(ctx, it))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Borealis", items[0].Customer)

	require.NoError(t, s.DeleteItem(ctx, "it-1"))
	require.Error(t, s.DeleteItem(ctx, "it-1"))
	require.Error(t, s.UpdateItem(ctx, it))
}

func TestMemoryStoreItemsSortedByDateThenID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateItem(ctx, job("b", "crew-1", day(2024, 4, 12))))
	require.NoError(t, s.CreateItem(ctx, job("a", "crew-1", day(2024, 4, 12))))
	require.NoError(t, s.CreateItem(ctx, job("z", "crew-1", day(2024, 4, 10))))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	ids := []string{items[0].ID, items[1].ID, items[2].ID}
	require.Equal(t, []string{"z", "a", "b"}, ids)
}

func TestMemoryStoreCrewDisplayOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"crew-3", "crew-1", "crew-2"} {
		require.NoError(t, s.CreateCrew(ctx, model.Crew{ID: id, Name: id, Shift: model.ShiftDay}))
	}
	crews, err := s.Crews(ctx)
	require.NoError(t, err)
	require.Equal(t, "crew-3", crews[0].ID)
	require.Equal(t, "crew-1", crews[1].ID)
	require.Equal(t, "crew-2", crews[2].ID)
}

func TestMemoryStoreArchiveCrewLeavesItemsUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateCrew(ctx, model.Crew{ID: "crew-1", Name: "North", Shift: model.ShiftDay}))
	require.NoError(t, s.CreateItem(ctx, job("it-1", "crew-1", day(2024, 4, 10))))
	require.NoError(t, s.CreateItem(ctx, job("it-2", "crew-1", day(2024, 4, 11))))

	require.NoError(t, s.ArchiveCrew(ctx, "crew-1", day(2024, 4, 12)))

	crews, err := s.Crews(ctx)
	require.NoError(t, err)
	require.NotNil(t, crews[0].ArchivedAt)

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		require.Equal(t, "crew-1", it.CrewID)
	}
}

func TestMemoryStoreMoveItemsToCrew(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateCrew(ctx, model.Crew{ID: "crew-1", Shift: model.ShiftDay}))
	require.NoError(t, s.CreateCrew(ctx, model.Crew{ID: "crew-2", Shift: model.ShiftDay}))
	require.NoError(t, s.CreateItem(ctx, job("it-1", "crew-1", day(2024, 4, 10))))
	require.NoError(t, s.CreateItem(ctx, job("it-2", "crew-1", day(2024, 4, 11))))

	require.NoError(t, s.MoveItemsToCrew(ctx, []string{"it-1", "it-2"}, "crew-2"))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	for _, it := range items {
		require.Equal(t, "crew-2", it.CrewID)
	}

	require.Error(t, s.MoveItemsToCrew(ctx, []string{"it-1"}, "crew-9"))
}

func TestMemoryStoreWorkforceUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.PutEmployee(ctx, model.Employee{ID: "emp-1", Name: "Kari", Status: model.EmployeeActive}))
	require.NoError(t, s.PutEmployee(ctx, model.Employee{ID: "emp-1", Name: "Kari", Status: model.EmployeeSick}))
	require.NoError(t, s.PutVehicle(ctx, model.Vehicle{ID: "veh-1", Status: model.VehicleActive, Color: "orange"}))

	emps, err := s.Employees(ctx)
	require.NoError(t, err)
	require.Len(t, emps, 1)
	require.Equal(t, model.EmployeeSick, emps[0].Status)

	vehs, err := s.Vehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehs, 1)
	require.Equal(t, "orange", vehs[0].Color)
}

type recordingReorderer struct {
	calls    []string
	removals []string
}

func (r *recordingReorderer) Reorder(cellKey, itemID string, position int) {
	r.calls = append(r.calls, cellKey+"/"+itemID)
}

func (r *recordingReorderer) Remove(cellKey, itemID string) {
	r.removals = append(r.removals, cellKey+"/"+itemID)
}

func TestApplyFeedsBatchInOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	orders := &recordingReorderer{}

	created := job("it-1", "crew-1", day(2024, 4, 10))
	res := engine.BatchResult{Mutations: []engine.Mutation{
		{Kind: engine.MutationCreate, Item: created},
		{Kind: engine.MutationReorder, ItemID: "it-1", CellKey: engine.CellKey("crew-1", day(2024, 4, 10)), Position: 0},
	}}

	applied, err := Apply(ctx, s, res, orders)
	require.NoError(t, err)
	require.Equal(t, 2, applied)
	require.Equal(t, []string{"crew-1|2024-04-10/it-1"}, orders.calls)
}

func TestApplyEvictsDeletedItemFromOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	orders := &recordingReorderer{}

	cell := engine.CellKey("crew-1", day(2024, 4, 10))
	res := engine.BatchResult{Mutations: []engine.Mutation{
		{Kind: engine.MutationCreate, Item: job("it-1", "crew-1", day(2024, 4, 10))},
		{Kind: engine.MutationDelete, ItemID: "it-1", CellKey: cell},
	}}

	applied, err := Apply(ctx, s, res, orders)
	require.NoError(t, err)
	require.Equal(t, 2, applied)
	require.Equal(t, []string{cell + "/it-1"}, orders.removals)

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	res := engine.BatchResult{Mutations: []engine.Mutation{
		{Kind: engine.MutationCreate, Item: job("it-1", "crew-1", day(2024, 4, 10))},
		{Kind: engine.MutationDelete, ItemID: "missing"},
		{Kind: engine.MutationCreate, Item: job("it-2", "crew-1", day(2024, 4, 11))},
	}}

	applied, err := Apply(ctx, s, res, nil)
	require.Error(t, err)
	require.Equal(t, 1, applied)

	items, lerr := s.Items(ctx)
	require.NoError(t, lerr)
	require.Len(t, items, 1)
}
