// Package metrics exposes solver activity as Prometheus metrics.
//
// Metrics:
//
//	mccall_solves_total{status}          solves finished, by convergence status
//	mccall_iterations_total              fixed-point iterations performed
//	mccall_solve_iterations              iterations per solve (histogram)
//	mccall_reservation_wage              reservation wage of the latest solve
//	mccall_unemployment_value            unemployment value of the latest solve
//	mccall_last_delta                    final |ΔVU| of the latest solve
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/rpgo/mccall/internal/domain"
)

// Collector records solver progress. It implements calculation.Observer.
type Collector struct {
	solves             *prometheus.CounterVec
	iterations         prometheus.Counter
	iterationsPerSolve prometheus.Histogram
	reservationWage    prometheus.Gauge
	unemploymentValue  prometheus.Gauge
	lastDelta          prometheus.Gauge
}

// NewCollector creates the solver metrics and registers them with reg
// (prometheus.DefaultRegisterer when nil).
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mccall_solves_total",
			Help: "Total number of finished solves by convergence status",
		}, []string{"status"}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mccall_iterations_total",
			Help: "Total number of fixed-point iterations performed",
		}),
		iterationsPerSolve: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mccall_solve_iterations",
			Help:    "Iterations needed per solve",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		reservationWage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mccall_reservation_wage",
			Help: "Reservation wage of the most recent solve",
		}),
		unemploymentValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mccall_unemployment_value",
			Help: "Unemployment value of the most recent solve",
		}),
		lastDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mccall_last_delta",
			Help: "Final absolute value change of the most recent solve",
		}),
	}

	reg.MustRegister(
		c.solves,
		c.iterations,
		c.iterationsPerSolve,
		c.reservationWage,
		c.unemploymentValue,
		c.lastDelta,
	)
	return c
}

// OnIteration counts one fixed-point iteration.
func (c *Collector) OnIteration(int, float64) {
	c.iterations.Inc()
}

// OnFinish records the outcome of a solve.
func (c *Collector) OnFinish(result domain.Result) {
	c.solves.WithLabelValues(result.Status.String()).Inc()
	c.iterationsPerSolve.Observe(float64(result.Iterations))
	c.reservationWage.Set(result.ReservationWage)
	c.unemploymentValue.Set(result.UnemploymentValue)
	c.lastDelta.Set(result.LastDelta)
}

// WriteText writes everything g gathers in the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if err := writeFamily(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeFamily(w io.Writer, mf *dto.MetricFamily) error {
	if len(mf.GetMetric()) == 0 {
		return nil
	}
	if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
		return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
	}
	return nil
}
