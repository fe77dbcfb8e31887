package domain

// Distribution types understood by the configuration layer.
const (
	DistUniform         = "uniform"
	DistTruncatedNormal = "truncated_normal"
	DistLogNormal       = "lognormal"
	DistConstant        = "constant"
	DistEmpirical       = "empirical"
)

// DistributionSpec describes a wage-offer distribution in configuration files.
// Only the fields relevant to Type are read.
type DistributionSpec struct {
	Type string `yaml:"type" json:"type"`

	// uniform
	Low  float64 `yaml:"low,omitempty" json:"low,omitempty"`
	High float64 `yaml:"high,omitempty" json:"high,omitempty"`

	// truncated_normal (Lower/Upper nil means unbounded on that side)
	Mean   float64  `yaml:"mean,omitempty" json:"mean,omitempty"`
	StdDev float64  `yaml:"std_dev,omitempty" json:"std_dev,omitempty"`
	Lower  *float64 `yaml:"lower,omitempty" json:"lower,omitempty"`
	Upper  *float64 `yaml:"upper,omitempty" json:"upper,omitempty"`

	// lognormal
	Mu    float64 `yaml:"mu,omitempty" json:"mu,omitempty"`
	Sigma float64 `yaml:"sigma,omitempty" json:"sigma,omitempty"`

	// constant
	Value float64 `yaml:"value,omitempty" json:"value,omitempty"`

	// empirical: CSV file of observed wages, resolved relative to the config file
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// SolverSettings are the numerical knobs shared by every model unless overridden.
type SolverSettings struct {
	SampleSize    int     `yaml:"sample_size,omitempty" json:"sample_size,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty"`
	Seed          int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	Verbose       *bool   `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// ModelSpec is one McCall instance to solve.
type ModelSpec struct {
	Name         string           `yaml:"name" json:"name"`
	Beta         float64          `yaml:"beta" json:"beta"`
	SearchCost   float64          `yaml:"search_cost" json:"search_cost"`
	Distribution DistributionSpec `yaml:"distribution" json:"distribution"`

	// Per-model overrides of the global solver settings.
	Solver *SolverSettings `yaml:"solver,omitempty" json:"solver,omitempty"`
}

// Configuration is the top-level YAML document.
type Configuration struct {
	Solver SolverSettings `yaml:"solver" json:"solver"`
	Models []ModelSpec    `yaml:"models" json:"models"`
}

// IsVerbose reports whether progress logging is on; unset means off.
func (s SolverSettings) IsVerbose() bool { return s.Verbose != nil && *s.Verbose }

// Settings merges the model overrides over the global settings.
func (c *Configuration) Settings(m ModelSpec) SolverSettings {
	s := c.Solver
	if m.Solver == nil {
		return s
	}
	if m.Solver.SampleSize != 0 {
		s.SampleSize = m.Solver.SampleSize
	}
	if m.Solver.Tolerance != 0 {
		s.Tolerance = m.Solver.Tolerance
	}
	if m.Solver.MaxIterations != 0 {
		s.MaxIterations = m.Solver.MaxIterations
	}
	if m.Solver.Seed != 0 {
		s.Seed = m.Solver.Seed
	}
	if m.Solver.Verbose != nil {
		s.Verbose = m.Solver.Verbose
	}
	return s
}

// Parameters builds the solver parameter bundle for a model.
func (c *Configuration) Parameters(m ModelSpec) Parameters {
	s := c.Settings(m)
	return Parameters{
		Beta:          m.Beta,
		SearchCost:    m.SearchCost,
		SampleSize:    s.SampleSize,
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
		Verbose:       s.IsVerbose(),
	}
}
