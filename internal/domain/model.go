package domain

import (
	"fmt"
	"math"
)

// Solver defaults carried over from the reference McCall setup.
const (
	DefaultSampleSize    = 100_000
	DefaultTolerance     = 1e-8
	DefaultMaxIterations = 10_000

	// ProgressInterval is how often (in iterations) verbose runs report VU.
	ProgressInterval = 100
)

// Parameters is the immutable input bundle of a single solve.
type Parameters struct {
	Beta          float64 `yaml:"beta" json:"beta"`                     // discount factor in (0,1)
	SearchCost    float64 `yaml:"search_cost" json:"search_cost"`       // per-period cost while searching
	SampleSize    int     `yaml:"sample_size" json:"sample_size"`       // Monte Carlo draws N
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`           // stop when |ΔVU| < Tolerance
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"` // iteration cap M
	Verbose       bool    `yaml:"verbose" json:"verbose"`
}

// DefaultParameters returns parameters for the given discount factor and search cost
// with the default sample size, tolerance and iteration cap.
func DefaultParameters(beta, searchCost float64) Parameters {
	return Parameters{
		Beta:          beta,
		SearchCost:    searchCost,
		SampleSize:    DefaultSampleSize,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate checks the parameter bundle before any sampling happens.
func (p Parameters) Validate() error {
	if math.IsNaN(p.Beta) || p.Beta <= 0 || p.Beta >= 1 {
		return fmt.Errorf("discount factor must be in (0,1), got %v", p.Beta)
	}
	if math.IsNaN(p.SearchCost) || math.IsInf(p.SearchCost, 0) {
		return fmt.Errorf("search cost must be finite, got %v", p.SearchCost)
	}
	if p.SampleSize <= 0 {
		return fmt.Errorf("sample size must be positive, got %d", p.SampleSize)
	}
	if math.IsNaN(p.Tolerance) || math.IsInf(p.Tolerance, 0) || p.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be a positive finite number, got %v", p.Tolerance)
	}
	if p.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", p.MaxIterations)
	}
	return nil
}

// WageSample is the fixed set of wage draws reused by every iteration of one solve.
type WageSample []float64

// Len returns the number of draws.
func (s WageSample) Len() int { return len(s) }

// ConvergenceStatus tracks where the fixed-point loop is.
type ConvergenceStatus int

const (
	StatusRunning ConvergenceStatus = iota
	StatusConverged
	StatusExhausted
)

func (s ConvergenceStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText lets the status appear by name in JSON and YAML reports.
func (s ConvergenceStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of a solve.
type Result struct {
	ReservationWage   float64           `json:"reservation_wage" yaml:"reservation_wage"`
	UnemploymentValue float64           `json:"unemployment_value" yaml:"unemployment_value"`
	Iterations        int               `json:"iterations" yaml:"iterations"`
	LastDelta         float64           `json:"last_delta" yaml:"last_delta"`
	Status            ConvergenceStatus `json:"status" yaml:"status"`
	SampleSize        int               `json:"sample_size" yaml:"sample_size"`
}

// Converged reports whether the tolerance was met before the iteration cap.
func (r Result) Converged() bool { return r.Status == StatusConverged }
