// Package events defines the schedule events emitted on the event bus.
//
// Available event types:
//   - MutationEvent: an applied board mutation
//   - ConflictEvent: a conflict check that reported unavailability
//   - ArchiveEvent: a crew archive outcome
package events

import (
	"time"

	"github.com/depotops/crewboard/core/conflict"
)

// Event is the union carried on the bus; exactly one field set per event.
type Event struct {
	Mutation *MutationEvent
	Conflict *ConflictEvent
	Archive  *ArchiveEvent
}

// MutationEvent reports one applied board mutation.
type MutationEvent struct {
	Op      string // create, update, delete, reorder
	ItemID  string
	CrewID  string
	DepotID string
	Date    time.Time
	Time    time.Time
}

// ConflictEvent reports an advisory unavailability result.
type ConflictEvent struct {
	Kind       conflict.ResourceKind
	ResourceID string
	Reason     conflict.Reason
	Date       time.Time
	Time       time.Time
}

// ArchiveEvent reports the outcome of a crew archive.
type ArchiveEvent struct {
	CrewID   string
	Outcome  string // archived, migrated, blocked
	Migrated int
	Time     time.Time
}
