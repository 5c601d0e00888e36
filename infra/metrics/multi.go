package metrics

import (
	"github.com/depotops/crewboard/core/conflict"
	"github.com/depotops/crewboard/core/engine"
	coremetrics "github.com/depotops/crewboard/core/metrics"
)

// MultiSink fans schedule activity out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMutations forwards the count to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordMutations(op string, count int) error {
	for _, s := range m.Sinks {
		if err := s.RecordMutations(op, count); err != nil {
			return err
		}
	}
	return nil
}

// RecordConflict forwards the conflict result.
func (m *MultiSink) RecordConflict(kind conflict.ResourceKind, reason conflict.Reason) error {
	for _, s := range m.Sinks {
		if err := s.RecordConflict(kind, reason); err != nil {
			return err
		}
	}
	return nil
}

// RecordArchive forwards the archive outcome.
func (m *MultiSink) RecordArchive(outcome string) error {
	for _, s := range m.Sinks {
		if err := s.RecordArchive(outcome); err != nil {
			return err
		}
	}
	return nil
}

// RecordSkips forwards skip counts to sinks that track them.
func (m *MultiSink) RecordSkips(reason engine.SkipReason, count int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SkipRecorder); ok {
			if err := rec.RecordSkips(reason, count); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBoardSize forwards the gauge value to sinks that track it.
func (m *MultiSink) RecordBoardSize(items int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.BoardSizeRecorder); ok {
			if err := rec.RecordBoardSize(items); err != nil {
				return err
			}
		}
	}
	return nil
}
