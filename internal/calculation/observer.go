package calculation

import "github.com/rpgo/mccall/internal/domain"

// Observer receives progress from the fixed-point loop. Observers only watch;
// nothing they do feeds back into the solve.
type Observer interface {
	OnIteration(iteration int, value float64)
	OnFinish(result domain.Result)
}

// ProgressObserver logs the running value every Interval iterations and the
// iteration count on convergence.
type ProgressObserver struct {
	Logger   Logger
	Interval int
}

// NewProgressObserver reports through l every domain.ProgressInterval iterations.
func NewProgressObserver(l Logger) *ProgressObserver {
	if l == nil {
		l = NopLogger{}
	}
	return &ProgressObserver{Logger: l, Interval: domain.ProgressInterval}
}

func (p *ProgressObserver) OnIteration(iteration int, value float64) {
	if p.Interval > 0 && iteration%p.Interval == 0 {
		p.Logger.Infof("[iter %5d] VU = %.6f", iteration, value)
	}
}

func (p *ProgressObserver) OnFinish(result domain.Result) {
	if result.Converged() {
		p.Logger.Infof("Converged after %d iterations.", result.Iterations)
	}
}

// TraceObserver keeps every value estimate in memory. The CLI attaches one per
// model for --trace so reports can carry the convergence path.
type TraceObserver struct {
	Values []float64
	Final  *domain.Result
}

func (t *TraceObserver) OnIteration(_ int, value float64) { t.Values = append(t.Values, value) }

func (t *TraceObserver) OnFinish(result domain.Result) {
	r := result
	t.Final = &r
}
