package domain

// ModelResult pairs a solved model with its outcome.
type ModelResult struct {
	Name         string           `json:"name" yaml:"name"`
	Parameters   Parameters       `json:"parameters" yaml:"parameters"`
	Distribution DistributionSpec `json:"distribution" yaml:"distribution"`
	Seed         int64            `json:"seed" yaml:"seed"`
	Result       Result           `json:"result" yaml:"result"`

	// Observed is set for empirical models: the data set the sample was drawn from.
	Observed *WageDataSet `json:"observed,omitempty" yaml:"observed,omitempty"`
	// Trace is the VU estimate after each iteration, kept only when requested.
	Trace []float64 `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// ModelComparison collects the results of every model in a run.
type ModelComparison struct {
	Models []ModelResult `json:"models" yaml:"models"`
	Sweep  []SweepPoint  `json:"sweep,omitempty" yaml:"sweep,omitempty"`
}

// AllConverged reports whether every model met its tolerance.
func (mc *ModelComparison) AllConverged() bool {
	for _, m := range mc.Models {
		if !m.Result.Converged() {
			return false
		}
	}
	return true
}

// SweepPoint is one search-cost value of a comparative-statics sweep.
type SweepPoint struct {
	SearchCost float64 `json:"search_cost" yaml:"search_cost"`
	Result     Result  `json:"result" yaml:"result"`
}
