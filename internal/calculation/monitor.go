package calculation

import (
	"math"

	"github.com/rpgo/mccall/internal/domain"
)

// ConvergenceMonitor gates the fixed-point loop. It starts Running with VU = 0 and
// moves to Converged or Exhausted; once done it ignores further updates.
type ConvergenceMonitor struct {
	tolerance     float64
	maxIterations int

	value      float64
	delta      float64
	iterations int
	status     domain.ConvergenceStatus
}

// NewConvergenceMonitor creates a monitor for the given tolerance and iteration cap.
func NewConvergenceMonitor(tolerance float64, maxIterations int) *ConvergenceMonitor {
	return &ConvergenceMonitor{
		tolerance:     tolerance,
		maxIterations: maxIterations,
		delta:         math.Inf(1),
		status:        domain.StatusRunning,
	}
}

// Update records the next value estimate and returns the resulting status.
func (m *ConvergenceMonitor) Update(next float64) domain.ConvergenceStatus {
	if m.Done() {
		return m.status
	}
	m.iterations++
	m.delta = math.Abs(next - m.value)
	m.value = next

	switch {
	case m.delta < m.tolerance:
		m.status = domain.StatusConverged
	case m.iterations >= m.maxIterations:
		m.status = domain.StatusExhausted
	}
	return m.status
}

func (m *ConvergenceMonitor) Value() float64                   { return m.value }
func (m *ConvergenceMonitor) Delta() float64                   { return m.delta }
func (m *ConvergenceMonitor) Iterations() int                  { return m.iterations }
func (m *ConvergenceMonitor) Status() domain.ConvergenceStatus { return m.status }
func (m *ConvergenceMonitor) Done() bool                       { return m.status != domain.StatusRunning }
