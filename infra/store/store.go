// Package store implements the storage collaborator for the dispatch
// board. The engine never calls it directly: callers apply the engine's
// proposed mutation batches here, one call per item, in the order the
// engine emitted them. The store owns durability; there is no atomicity
// across a batch and partial application must be tolerated upstream.
package store

import (
	"context"
	"time"

	"github.com/depotops/crewboard/core/engine"
	"github.com/depotops/crewboard/core/model"
)

// Store persists schedule items and crews.
type Store interface {
	CreateItem(ctx context.Context, it model.ScheduleItem) error
	UpdateItem(ctx context.Context, it model.ScheduleItem) error
	DeleteItem(ctx context.Context, id string) error

	CreateCrew(ctx context.Context, c model.Crew) error
	// ArchiveCrew soft-deletes the crew. It never touches items.
	ArchiveCrew(ctx context.Context, crewID string, at time.Time) error
	// MoveItemsToCrew reassigns the given items to the crew.
	MoveItemsToCrew(ctx context.Context, itemIDs []string, crewID string) error

	// PutEmployee and PutVehicle upsert workforce reference data.
	PutEmployee(ctx context.Context, e model.Employee) error
	PutVehicle(ctx context.Context, v model.Vehicle) error

	Items(ctx context.Context) ([]model.ScheduleItem, error)
	Crews(ctx context.Context) ([]model.Crew, error)
	Employees(ctx context.Context) ([]model.Employee, error)
	Vehicles(ctx context.Context) ([]model.Vehicle, error)
}

// Reorderer receives the engine's presentation-order mutations. Display
// order never reaches the Store.
type Reorderer interface {
	Reorder(cellKey, itemID string, position int)
	// Remove evicts a deleted item from its cell's order list.
	Remove(cellKey, itemID string)
}

// Apply feeds a batch into the store in emitted order. It stops at the
// first failing call and reports how many mutations were applied; the
// caller retries idempotently or surfaces the partial state.
func Apply(ctx context.Context, s Store, res engine.BatchResult, orders Reorderer) (int, error) {
	applied := 0
	for _, m := range res.Mutations {
		var err error
		switch m.Kind {
		case engine.MutationCreate:
			err = s.CreateItem(ctx, m.Item)
		case engine.MutationUpdate:
			err = s.UpdateItem(ctx, m.Item)
		case engine.MutationDelete:
			err = s.DeleteItem(ctx, m.ItemID)
			if err == nil && orders != nil && m.CellKey != "" {
				orders.Remove(m.CellKey, m.ItemID)
			}
		case engine.MutationReorder:
			if orders != nil {
				orders.Reorder(m.CellKey, m.ItemID, m.Position)
			}
		}
		if err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
