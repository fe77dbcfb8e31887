package calculation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rpgo/mccall/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

// WageDistribution is anything that can produce n independent wage offers.
type WageDistribution interface {
	Sample(n int) ([]float64, error)
}

// newSource returns the PCG stream for a seed, so equal seeds give equal samples.
func newSource(seed int64) *rand.PCG {
	return rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
}

// Uniform draws wages uniformly on [Low, High).
type Uniform struct {
	Low, High float64
	dist      distuv.Uniform
}

// NewUniform creates a seeded uniform wage distribution.
func NewUniform(low, high float64, seed int64) (*Uniform, error) {
	if !isFinite(low) || !isFinite(high) || high <= low {
		return nil, fmt.Errorf("uniform bounds must be finite with low < high, got [%v, %v]", low, high)
	}
	return &Uniform{
		Low: low, High: high,
		dist: distuv.Uniform{Min: low, Max: high, Src: newSource(seed)},
	}, nil
}

func (u *Uniform) Sample(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = u.dist.Rand()
	}
	return out, nil
}

func (u *Uniform) String() string { return fmt.Sprintf("Uniform[%g,%g]", u.Low, u.High) }

// TruncatedNormal draws from N(Mean, StdDev²) restricted to [Lower, Upper].
// Infinite bounds are allowed.
type TruncatedNormal struct {
	Mean, StdDev float64
	Lower, Upper float64

	// standardized interval, reflected so that it never lies entirely in the upper tail
	a, b float64
	flip bool
	std  distuv.Normal
	// uniform over [Φ(a), Φ(b)]
	prob distuv.Uniform
}

// NewTruncatedNormal creates a seeded truncated normal wage distribution.
func NewTruncatedNormal(mean, stdDev, lower, upper float64, seed int64) (*TruncatedNormal, error) {
	if !isFinite(mean) || !isFinite(stdDev) || stdDev <= 0 {
		return nil, fmt.Errorf("truncated normal needs finite mean and positive std dev, got mean=%v sd=%v", mean, stdDev)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower >= upper {
		return nil, fmt.Errorf("truncated normal bounds must satisfy lower < upper, got [%v, %v]", lower, upper)
	}
	a := (lower - mean) / stdDev
	b := (upper - mean) / stdDev
	flip := a > 0
	if flip {
		a, b = -b, -a
	}
	std := distuv.UnitNormal
	cdfA, cdfB := std.CDF(a), std.CDF(b)
	if !(cdfB-cdfA > 0) {
		return nil, fmt.Errorf("truncated normal interval [%v, %v] carries no probability mass", lower, upper)
	}
	return &TruncatedNormal{
		Mean: mean, StdDev: stdDev, Lower: lower, Upper: upper,
		a: a, b: b, flip: flip, std: std,
		prob: distuv.Uniform{Min: cdfA, Max: cdfB, Src: newSource(seed)},
	}, nil
}

func (t *TruncatedNormal) Sample(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		var z float64
		for {
			p := t.prob.Rand()
			if p > 0 && p < 1 {
				z = t.std.Quantile(p)
				break
			}
		}
		z = math.Max(t.a, math.Min(t.b, z))
		if t.flip {
			z = -z
		}
		x := t.Mean + t.StdDev*z
		out[i] = math.Max(t.Lower, math.Min(t.Upper, x))
	}
	return out, nil
}

func (t *TruncatedNormal) String() string {
	return fmt.Sprintf("TruncatedNormal(μ=%g, σ=%g)[%g,%g]", t.Mean, t.StdDev, t.Lower, t.Upper)
}

// LogNormal draws exp(Mu + Sigma·Z) with Z standard normal.
type LogNormal struct {
	Mu, Sigma float64
	dist      distuv.LogNormal
}

// NewLogNormal creates a seeded log-normal wage distribution.
func NewLogNormal(mu, sigma float64, seed int64) (*LogNormal, error) {
	if !isFinite(mu) || !isFinite(sigma) || sigma <= 0 {
		return nil, fmt.Errorf("lognormal needs finite mu and positive sigma, got mu=%v sigma=%v", mu, sigma)
	}
	return &LogNormal{
		Mu: mu, Sigma: sigma,
		dist: distuv.LogNormal{Mu: mu, Sigma: sigma, Src: newSource(seed)},
	}, nil
}

func (l *LogNormal) Sample(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = l.dist.Rand()
	}
	return out, nil
}

func (l *LogNormal) String() string { return fmt.Sprintf("LogNormal(μ=%g, σ=%g)", l.Mu, l.Sigma) }

// Constant is the degenerate distribution that always offers Value.
type Constant struct {
	Value float64
}

func (c Constant) Sample(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = c.Value
	}
	return out, nil
}

func (c Constant) String() string { return fmt.Sprintf("Constant(%g)", c.Value) }

// Empirical resamples, with replacement, from a set of observed wages.
type Empirical struct {
	Wages []float64
	// Data is the loaded file behind Wages, when there is one.
	Data *domain.WageDataSet
	rng  *rand.Rand
}

// NewEmpirical creates a seeded bootstrap distribution over wages.
func NewEmpirical(wages []float64, seed int64) (*Empirical, error) {
	if len(wages) == 0 {
		return nil, fmt.Errorf("empirical distribution needs at least one observed wage")
	}
	return &Empirical{Wages: wages, rng: rand.New(newSource(seed))}, nil
}

func (e *Empirical) Sample(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = e.Wages[e.rng.IntN(len(e.Wages))]
	}
	return out, nil
}

func (e *Empirical) String() string { return fmt.Sprintf("Empirical(%d observations)", len(e.Wages)) }

// ObservedWages returns the data set behind an empirical distribution, or nil.
func ObservedWages(dist WageDistribution) *domain.WageDataSet {
	if e, ok := dist.(*Empirical); ok {
		return e.Data
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
