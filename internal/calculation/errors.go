package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters is returned before sampling when the inputs cannot define a solvable model.
	ErrInvalidParameters = errors.New("invalid solver parameters")

	// ErrSamplingFailure indicates the wage distribution failed or produced unusable draws.
	ErrSamplingFailure = errors.New("wage sampling failed")

	// ErrNotConverged marks a result whose iteration cap was hit before the tolerance.
	ErrNotConverged = errors.New("fixed-point iteration did not converge")

	// ErrUnknownDistribution is returned for distribution types the factory does not know.
	ErrUnknownDistribution = errors.New("unknown wage distribution")
)

// SamplingError reports a bad draw and where it occurred.
type SamplingError struct {
	Index int
	Value float64
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("%v: non-finite draw %v at index %d", ErrSamplingFailure, e.Value, e.Index)
}

func (e *SamplingError) Unwrap() error { return ErrSamplingFailure }
