package metrics

import (
	"github.com/depotops/crewboard/core/conflict"
	"github.com/depotops/crewboard/core/engine"
)

// Sink records schedule activity for observability purposes.
type Sink interface {
	// RecordMutations counts applied mutations per operation name.
	RecordMutations(op string, count int) error
	// RecordConflict counts advisory conflict outcomes by reason.
	RecordConflict(kind conflict.ResourceKind, reason conflict.Reason) error
	// RecordArchive counts crew archive outcomes.
	RecordArchive(outcome string) error
}

// BoardSizeRecorder is implemented by sinks able to track the number of
// live items on the board.
type BoardSizeRecorder interface {
	RecordBoardSize(items int) error
}

// SkipRecorder is implemented by sinks able to count policy skips.
type SkipRecorder interface {
	RecordSkips(reason engine.SkipReason, count int) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordMutations(string, int) error                           { return nil }
func (NopSink) RecordConflict(conflict.ResourceKind, conflict.Reason) error { return nil }
func (NopSink) RecordArchive(string) error                                  { return nil }
func (NopSink) RecordBoardSize(int) error                                   { return nil }
func (NopSink) RecordSkips(engine.SkipReason, int) error                    { return nil }
