package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/mccall/internal/domain"
)

// Solver computes the reservation wage of the McCall search model by fixed-point
// iteration on the unemployment value
//
//	VU = -c + β·mean_i max(w_i/(1-β), VU)
//
// over a Monte Carlo sample drawn once per solve. A Solver holds no state between
// solves other than its logger and observers.
type Solver struct {
	Logger    Logger
	observers []Observer
}

// NewSolver creates a solver that logs through slog.Default, so a non-converged
// solve is always reported. Use SetLogger(nil) to silence it.
func NewSolver() *Solver {
	return &Solver{Logger: NewSlogLogger(nil)}
}

// SetLogger sets the solver logger. If nil is provided, a no-op logger is used.
func (s *Solver) SetLogger(l Logger) {
	if l == nil {
		s.Logger = NopLogger{}
		return
	}
	s.Logger = l
}

// AddObserver attaches an observer to every subsequent solve.
func (s *Solver) AddObserver(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Solve draws params.SampleSize wages from dist and iterates to the fixed point.
// Hitting the iteration cap is not an error: the last estimate is returned with
// StatusExhausted. Extra observers watch this solve only.
func (s *Solver) Solve(params domain.Parameters, dist WageDistribution, extra ...Observer) (domain.Result, error) {
	if err := params.Validate(); err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	sample, err := DrawSample(dist, params.SampleSize)
	if err != nil {
		return domain.Result{}, err
	}
	return s.SolveSample(params, sample, extra...)
}

// SolveSample iterates to the fixed point on a sample the caller already drew.
// The sample is read, never modified; its length overrides params.SampleSize.
func (s *Solver) SolveSample(params domain.Parameters, sample domain.WageSample, extra ...Observer) (domain.Result, error) {
	if len(sample) > 0 {
		params.SampleSize = len(sample)
	}
	if err := params.Validate(); err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if len(sample) == 0 {
		return domain.Result{}, fmt.Errorf("%w: empty wage sample", ErrInvalidParameters)
	}

	accept := make([]float64, len(sample))
	for i, w := range sample {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return domain.Result{}, &SamplingError{Index: i, Value: w}
		}
		accept[i] = w / (1 - params.Beta)
	}

	observers := s.observers[:len(s.observers):len(s.observers)]
	for _, o := range extra {
		if o != nil {
			observers = append(observers, o)
		}
	}
	if params.Verbose {
		observers = append(observers, NewProgressObserver(s.Logger))
	}

	s.Logger.Debugf("solving McCall model: beta=%g c=%g N=%d tol=%g max_iter=%d",
		params.Beta, params.SearchCost, len(sample), params.Tolerance, params.MaxIterations)

	monitor := NewConvergenceMonitor(params.Tolerance, params.MaxIterations)
	n := float64(len(accept))
	vu := 0.0
	for !monitor.Done() {
		var sum float64
		for _, a := range accept {
			if a > vu {
				sum += a
			} else {
				sum += vu
			}
		}
		vu = -params.SearchCost + params.Beta*(sum/n)
		monitor.Update(vu)
		for _, o := range observers {
			o.OnIteration(monitor.Iterations(), vu)
		}
	}

	result := AssembleResult(params.Beta, monitor, len(sample))
	if result.Status == domain.StatusExhausted {
		s.Logger.Warnf("didn't converge: %d iterations, |ΔVU| = %.3g (tolerance %g)",
			result.Iterations, result.LastDelta, params.Tolerance)
	}
	for _, o := range observers {
		o.OnFinish(result)
	}
	return result, nil
}

// AssembleResult derives the reservation wage R = (1-β)·VU from the monitor's final value.
func AssembleResult(beta float64, monitor *ConvergenceMonitor, sampleSize int) domain.Result {
	vu := monitor.Value()
	return domain.Result{
		ReservationWage:   (1 - beta) * vu,
		UnemploymentValue: vu,
		Iterations:        monitor.Iterations(),
		LastDelta:         monitor.Delta(),
		Status:            monitor.Status(),
		SampleSize:        sampleSize,
	}
}

// RequireConverged turns an exhausted result into ErrNotConverged.
func RequireConverged(r domain.Result) error {
	if r.Converged() {
		return nil
	}
	return fmt.Errorf("%w after %d iterations (|ΔVU| = %g)", ErrNotConverged, r.Iterations, r.LastDelta)
}

// SweepSearchCost solves the model once per search cost on one shared sample.
// Sharing the sample makes the reservation wages directly comparable.
func (s *Solver) SweepSearchCost(params domain.Parameters, sample domain.WageSample, costs []float64) ([]domain.SweepPoint, error) {
	if len(costs) == 0 {
		return nil, fmt.Errorf("%w: no search costs to sweep", ErrInvalidParameters)
	}
	points := make([]domain.SweepPoint, 0, len(costs))
	for _, c := range costs {
		p := params
		p.SearchCost = c
		res, err := s.SolveSample(p, sample)
		if err != nil {
			return nil, fmt.Errorf("search cost %g: %w", c, err)
		}
		points = append(points, domain.SweepPoint{SearchCost: c, Result: res})
	}
	return points, nil
}
