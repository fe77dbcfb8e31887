package calculation

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/rpgo/mccall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures formatted messages per level.
type recordingLogger struct {
	infos []string
	warns []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {}
func (r *recordingLogger) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Errorf(format string, args ...any) {}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

// uniformReservationWage solves 0 = (β/2)R² - R + β/2 - c(1-β), the exact fixed
// point for W ~ U[0,1].
func uniformReservationWage(beta, c float64) float64 {
	a := beta / 2
	k := a - c*(1-beta)
	return (1 - math.Sqrt(1-4*a*k)) / (2 * a)
}

func TestSolveUniformMatchesAnalyticFixedPoint(t *testing.T) {
	dist, err := NewUniform(0, 1, 42)
	require.NoError(t, err)

	params := domain.DefaultParameters(0.9, 0.1)
	res, err := NewSolver().Solve(params, dist)
	require.NoError(t, err)

	assert.True(t, res.Converged())
	assert.Less(t, res.Iterations, 1000)
	assert.Equal(t, params.SampleSize, res.SampleSize)
	assert.Less(t, res.LastDelta, params.Tolerance)

	want := uniformReservationWage(0.9, 0.1)
	assert.InDelta(t, 0.6044, want, 1e-3)
	assert.InDelta(t, want, res.ReservationWage, 0.01)
	assert.LessOrEqual(t, res.ReservationWage, 1.0)
	assert.Equal(t, (1-params.Beta)*res.UnemploymentValue, res.ReservationWage)
}

func TestSolveReservationWageIdentity(t *testing.T) {
	for _, beta := range []float64{0.5, 0.9, 0.95, 0.99} {
		for _, c := range []float64{0, 0.1, 1} {
			t.Run(fmt.Sprintf("beta=%g/c=%g", beta, c), func(t *testing.T) {
				dist, err := NewUniform(0, 1, 7)
				require.NoError(t, err)
				params := domain.DefaultParameters(beta, c)
				params.SampleSize = 2000

				res, err := NewSolver().Solve(params, dist)
				require.NoError(t, err)
				require.True(t, res.Converged())
				assert.Equal(t, (1-beta)*res.UnemploymentValue, res.ReservationWage)
			})
		}
	}
}

func TestSolveConstantWage(t *testing.T) {
	params := domain.DefaultParameters(0.9, 0.1)
	params.SampleSize = 100

	res, err := NewSolver().Solve(params, Constant{Value: 1})
	require.NoError(t, err)

	assert.True(t, res.Converged())
	assert.Equal(t, 2, res.Iterations)
	assert.InDelta(t, 8.9, res.UnemploymentValue, 1e-9)
	assert.InDelta(t, 0.89, res.ReservationWage, 1e-9)
	assert.LessOrEqual(t, res.ReservationWage, 1.0)
}

func TestSolveZeroCostNonNegativeWages(t *testing.T) {
	dists := map[string]WageDistribution{}
	u, err := NewUniform(0, 2, 3)
	require.NoError(t, err)
	dists["uniform"] = u
	tn, err := NewTruncatedNormal(1, 0.5, 0, math.Inf(1), 3)
	require.NoError(t, err)
	dists["truncated_normal"] = tn
	dists["zero"] = Constant{Value: 0}

	for name, dist := range dists {
		t.Run(name, func(t *testing.T) {
			params := domain.DefaultParameters(0.95, 0)
			params.SampleSize = 5000
			res, err := NewSolver().Solve(params, dist)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.UnemploymentValue, 0.0)
			assert.GreaterOrEqual(t, res.ReservationWage, 0.0)
		})
	}
}

func TestSolveHigherCostLowersReservationWage(t *testing.T) {
	dist, err := NewUniform(0, 1, 11)
	require.NoError(t, err)
	sample, err := DrawSample(dist, 20000)
	require.NoError(t, err)

	solver := NewSolver()
	params := domain.DefaultParameters(0.9, 0)
	prev := math.Inf(1)
	for _, c := range []float64{0, 0.05, 0.1, 0.2, 0.5, 1, 2} {
		params.SearchCost = c
		res, err := solver.SolveSample(params, sample)
		require.NoError(t, err)
		require.True(t, res.Converged())
		assert.LessOrEqual(t, res.ReservationWage, prev, "search cost %g", c)
		prev = res.ReservationWage
	}
}

func TestSolveIsReproducible(t *testing.T) {
	params := domain.DefaultParameters(0.9, 0.1)
	params.SampleSize = 10000

	solve := func() domain.Result {
		dist, err := NewTruncatedNormal(1, 0.5, 0, math.Inf(1), 99)
		require.NoError(t, err)
		res, err := NewSolver().Solve(params, dist)
		require.NoError(t, err)
		return res
	}
	first, second := solve(), solve()
	assert.Equal(t, first, second)

	dist, err := NewUniform(0, 1, 5)
	require.NoError(t, err)
	sample, err := DrawSample(dist, 1000)
	require.NoError(t, err)
	snapshot := append(domain.WageSample(nil), sample...)

	solver := NewSolver()
	a, err := solver.SolveSample(params, sample)
	require.NoError(t, err)
	b, err := solver.SolveSample(params, sample)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, snapshot, sample, "sample must not be modified")
}

func TestSolveReportsNonConvergence(t *testing.T) {
	dist, err := NewUniform(0, 1, 1)
	require.NoError(t, err)

	logger := &recordingLogger{}
	solver := NewSolver()
	solver.SetLogger(logger)

	params := domain.DefaultParameters(0.9, 0.1)
	params.SampleSize = 1000
	params.Tolerance = 1e-300
	params.MaxIterations = 3

	res, err := solver.Solve(params, dist)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExhausted, res.Status)
	assert.False(t, res.Converged())
	assert.Equal(t, 3, res.Iterations)
	assert.Greater(t, res.UnemploymentValue, 0.0)
	assert.Equal(t, (1-params.Beta)*res.UnemploymentValue, res.ReservationWage)

	err = RequireConverged(res)
	assert.ErrorIs(t, err, ErrNotConverged)
	require.Len(t, logger.warns, 1)
	assert.True(t, strings.HasPrefix(logger.warns[0], "didn't converge"))
	assert.Empty(t, logger.infos, "progress is only reported when verbose")
}

func TestSolveVerboseProgress(t *testing.T) {
	t.Run("exhausted", func(t *testing.T) {
		dist, err := NewUniform(0, 1, 2)
		require.NoError(t, err)
		logger := &recordingLogger{}
		solver := NewSolver()
		solver.SetLogger(logger)

		params := domain.DefaultParameters(0.999, 0)
		params.SampleSize = 1000
		params.Tolerance = 1e-300
		params.MaxIterations = 200
		params.Verbose = true

		res, err := solver.Solve(params, dist)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusExhausted, res.Status)
		assert.Equal(t, 2, countPrefix(logger.infos, "[iter"))
		assert.Equal(t, "[iter   100] VU = ", logger.infos[0][:len("[iter   100] VU = ")])
		assert.Zero(t, countPrefix(logger.infos, "Converged"))
		assert.Len(t, logger.warns, 1)
	})

	t.Run("converged", func(t *testing.T) {
		logger := &recordingLogger{}
		solver := NewSolver()
		solver.SetLogger(logger)

		params := domain.DefaultParameters(0.9, 0.1)
		params.SampleSize = 10
		params.Verbose = true

		_, err := solver.Solve(params, Constant{Value: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Converged after 2 iterations."}, logger.infos)
		assert.Empty(t, logger.warns)
	})
}

func TestObserversDoNotChangeResult(t *testing.T) {
	dist, err := NewUniform(0, 1, 8)
	require.NoError(t, err)
	sample, err := DrawSample(dist, 5000)
	require.NoError(t, err)
	params := domain.DefaultParameters(0.9, 0.1)

	plain, err := NewSolver().SolveSample(params, sample)
	require.NoError(t, err)

	trace := &TraceObserver{}
	observed := NewSolver()
	observed.AddObserver(trace)
	observed.AddObserver(nil)
	params.Verbose = true
	withObservers, err := observed.SolveSample(params, sample)
	require.NoError(t, err)

	assert.Equal(t, plain, withObservers)
	assert.Len(t, trace.Values, plain.Iterations)
	require.NotNil(t, trace.Final)
	assert.Equal(t, plain, *trace.Final)
	assert.Equal(t, plain.UnemploymentValue, trace.Values[len(trace.Values)-1])
}

func TestSolveRejectsInvalidParameters(t *testing.T) {
	dist := Constant{Value: 1}
	base := domain.DefaultParameters(0.9, 0.1)
	base.SampleSize = 10

	cases := map[string]func(p *domain.Parameters){
		"beta zero":          func(p *domain.Parameters) { p.Beta = 0 },
		"beta one":           func(p *domain.Parameters) { p.Beta = 1 },
		"beta above one":     func(p *domain.Parameters) { p.Beta = 1.5 },
		"beta NaN":           func(p *domain.Parameters) { p.Beta = math.NaN() },
		"cost infinite":      func(p *domain.Parameters) { p.SearchCost = math.Inf(1) },
		"zero sample":        func(p *domain.Parameters) { p.SampleSize = 0 },
		"negative sample":    func(p *domain.Parameters) { p.SampleSize = -5 },
		"zero tolerance":     func(p *domain.Parameters) { p.Tolerance = 0 },
		"zero iteration cap": func(p *domain.Parameters) { p.MaxIterations = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			_, err := NewSolver().Solve(p, dist)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}

	_, err := NewSolver().Solve(base, nil)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = NewSolver().SolveSample(base, nil)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

type brokenDistribution struct {
	err   error
	draws []float64
}

func (b brokenDistribution) Sample(n int) ([]float64, error) { return b.draws, b.err }

func TestSolveRejectsSamplingFailures(t *testing.T) {
	params := domain.DefaultParameters(0.9, 0.1)
	params.SampleSize = 3

	_, err := NewSolver().Solve(params, brokenDistribution{err: errors.New("rng exhausted")})
	assert.ErrorIs(t, err, ErrSamplingFailure)

	_, err = NewSolver().Solve(params, brokenDistribution{draws: []float64{1, 2}})
	assert.ErrorIs(t, err, ErrSamplingFailure)

	_, err = NewSolver().Solve(params, brokenDistribution{draws: []float64{1, math.NaN(), 2}})
	assert.ErrorIs(t, err, ErrSamplingFailure)
	var se *SamplingError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)

	_, err = NewSolver().SolveSample(params, domain.WageSample{1, math.Inf(1)})
	assert.ErrorIs(t, err, ErrSamplingFailure)
}

func TestSweepSearchCost(t *testing.T) {
	dist, err := NewUniform(0, 1, 21)
	require.NoError(t, err)
	sample, err := DrawSample(dist, 10000)
	require.NoError(t, err)

	costs := []float64{0, 0.1, 0.25, 0.5}
	points, err := NewSolver().SweepSearchCost(domain.DefaultParameters(0.9, 0), sample, costs)
	require.NoError(t, err)
	require.Len(t, points, len(costs))

	for i, p := range points {
		assert.Equal(t, costs[i], p.SearchCost)
		assert.True(t, p.Result.Converged())
		assert.InDelta(t, uniformReservationWage(0.9, p.SearchCost), p.Result.ReservationWage, 0.02)
		if i > 0 {
			assert.LessOrEqual(t, p.Result.ReservationWage, points[i-1].Result.ReservationWage)
		}
	}

	_, err = NewSolver().SweepSearchCost(domain.DefaultParameters(0.9, 0), sample, nil)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = NewSolver().SweepSearchCost(domain.DefaultParameters(0.9, 0), sample, []float64{0.1, math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	s := NewSolver()
	s.SetLogger(nil)
	assert.IsType(t, NopLogger{}, s.Logger)
}

func TestDefaultSolverReportsNonConvergence(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	params := domain.DefaultParameters(0.9, 0.1)
	params.SampleSize = 100
	params.Tolerance = 1e-300
	params.MaxIterations = 1

	res, err := NewSolver().Solve(params, Constant{Value: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExhausted, res.Status)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "didn't converge: 1 iterations")
}

func TestExtraObserversWatchOneSolve(t *testing.T) {
	solver := NewSolver()
	solver.SetLogger(nil)
	params := domain.DefaultParameters(0.9, 0.1)
	params.SampleSize = 10

	trace := &TraceObserver{}
	first, err := solver.Solve(params, Constant{Value: 1}, trace, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{first.UnemploymentValue, first.UnemploymentValue}, trace.Values)

	_, err = solver.Solve(params, Constant{Value: 1})
	require.NoError(t, err)
	assert.Len(t, trace.Values, 2)
}
