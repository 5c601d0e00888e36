// Package travel defines the optional travel-time collaborator used to
// suggest job start times from the previous job's address.
package travel

import "time"

// Estimator suggests a start time at the destination address given the
// prior job's end. Implementations are expected to be pure; failures are
// absorbed by callers with a configured fallback start time.
type Estimator interface {
	Suggest(fromAddr, toAddr string, priorEnd time.Time) (time.Time, error)
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(fromAddr, toAddr string, priorEnd time.Time) (time.Time, error)

func (f EstimatorFunc) Suggest(from, to string, priorEnd time.Time) (time.Time, error) {
	return f(from, to, priorEnd)
}

// FixedOffset estimates arrival as a constant travel duration after the
// prior end. Useful as a default and in tests.
type FixedOffset struct {
	Travel time.Duration
}

func (f FixedOffset) Suggest(_, _ string, priorEnd time.Time) (time.Time, error) {
	return priorEnd.Add(f.Travel), nil
}
