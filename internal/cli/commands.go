package cli

import (
	"fmt"
	"strings"

	"github.com/rpgo/mccall/internal/calculation"
	"github.com/rpgo/mccall/internal/config"
	"github.com/rpgo/mccall/internal/domain"
	"github.com/spf13/cobra"
)

// modelFlags describe a single model on the command line.
type modelFlags struct {
	name       string
	beta       float64
	searchCost float64

	dist   string
	low    float64
	high   float64
	mean   float64
	stdDev float64
	lower  float64
	upper  float64
	mu     float64
	sigma  float64
	value  float64
	wages  string

	samples int
	tol     float64
	maxIter int
	seed    int64
	verbose bool
}

func (mf *modelFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&mf.name, "name", "model", "model name used in reports")
	f.Float64Var(&mf.beta, "beta", 0.9, "discount factor in (0,1)")
	f.Float64Var(&mf.searchCost, "cost", 0.1, "per-period search cost")

	f.StringVar(&mf.dist, "dist", domain.DistUniform, "wage distribution: "+strings.Join(calculation.DistributionTypes(), ", "))
	f.Float64Var(&mf.low, "low", 0, "uniform lower bound")
	f.Float64Var(&mf.high, "high", 1, "uniform upper bound")
	f.Float64Var(&mf.mean, "mean", 1, "truncated normal mean")
	f.Float64Var(&mf.stdDev, "std-dev", 0.5, "truncated normal standard deviation")
	f.Float64Var(&mf.lower, "lower", 0, "truncated normal lower bound (unbounded if unset)")
	f.Float64Var(&mf.upper, "upper", 0, "truncated normal upper bound (unbounded if unset)")
	f.Float64Var(&mf.mu, "mu", 0, "lognormal location")
	f.Float64Var(&mf.sigma, "sigma", 0.5, "lognormal scale")
	f.Float64Var(&mf.value, "value", 1, "constant wage")
	f.StringVar(&mf.wages, "wages", "", "CSV file of observed wages for the empirical distribution")

	f.IntVar(&mf.samples, "samples", domain.DefaultSampleSize, "Monte Carlo sample size")
	f.Float64Var(&mf.tol, "tol", domain.DefaultTolerance, "convergence tolerance on VU")
	f.IntVar(&mf.maxIter, "max-iter", domain.DefaultMaxIterations, "maximum number of iterations")
	f.Int64Var(&mf.seed, "seed", 0, "random seed (0 picks one)")
	f.BoolVarP(&mf.verbose, "verbose", "v", false, "log progress every 100 iterations")
}

// configuration turns the flags into a one-model configuration.
func (mf *modelFlags) configuration(cmd *cobra.Command) *domain.Configuration {
	spec := domain.DistributionSpec{
		Type:   strings.ToLower(mf.dist),
		Low:    mf.low,
		High:   mf.high,
		Mean:   mf.mean,
		StdDev: mf.stdDev,
		Mu:     mf.mu,
		Sigma:  mf.sigma,
		Value:  mf.value,
		File:   mf.wages,
	}
	if cmd.Flags().Changed("lower") {
		lower := mf.lower
		spec.Lower = &lower
	}
	if cmd.Flags().Changed("upper") {
		upper := mf.upper
		spec.Upper = &upper
	}

	verbose := mf.verbose
	return &domain.Configuration{
		Solver: domain.SolverSettings{
			SampleSize:    mf.samples,
			Tolerance:     mf.tol,
			MaxIterations: mf.maxIter,
			Seed:          mf.seed,
			Verbose:       &verbose,
		},
		Models: []domain.ModelSpec{{
			Name:         mf.name,
			Beta:         mf.beta,
			SearchCost:   mf.searchCost,
			Distribution: spec,
		}},
	}
}

func buildSolveCommand(ro *rootOptions) *cobra.Command {
	var mf modelFlags
	var rep reportOptions
	var configFile string
	var trace bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the reservation wage",
		Long: `Solve one model described by flags, or every model of a YAML config file.

Examples:
  mccall solve --beta 0.9 --cost 0.1 --dist uniform --seed 42
  mccall solve --dist truncated_normal --mean 1 --std-dev 0.5 --lower 0
  mccall solve -c models.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd, ro)
			if err != nil {
				return err
			}

			var cfg *domain.Configuration
			if configFile != "" {
				cfg, err = config.NewInputParser().LoadFromFile(configFile)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
			} else {
				cfg = mf.configuration(cmd)
				if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
					return fmt.Errorf("%w: %v", calculation.ErrInvalidParameters, err)
				}
			}

			results, err := r.solveModels(cfg, trace)
			if err != nil {
				return err
			}
			return r.report(results, rep)
		},
	}

	mf.register(cmd)
	rep.register(cmd, "console")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML file of models to solve (overrides model flags)")
	cmd.Flags().BoolVar(&trace, "trace", false, "include the VU estimate of every iteration in json/yaml reports")
	return cmd
}

func buildDemoCommand(ro *rootOptions) *cobra.Command {
	var rep reportOptions
	var seed int64
	var samples int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Solve the uniform and truncated-normal reference models",
		Long: `Solve the two reference McCall instances with beta = 0.9 and c = 0.1:
wage offers uniform on [0,1] (with progress logging) and normal(1, 0.5)
truncated to [0, inf).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd, ro)
			if err != nil {
				return err
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			cfg.Solver.Seed = seed
			cfg.Solver.SampleSize = samples

			results, err := r.solveModels(cfg, false)
			if err != nil {
				return err
			}
			return r.report(results, rep)
		},
	}

	rep.register(cmd, "console")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&samples, "samples", domain.DefaultSampleSize, "Monte Carlo sample size")
	return cmd
}

func buildSweepCommand(ro *rootOptions) *cobra.Command {
	var mf modelFlags
	var rep reportOptions
	var costs []float64

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Reservation wage across a grid of search costs",
		Long: `Solve the model once per search cost on a single shared wage sample, so the
reservation wages are directly comparable.

Example:
  mccall sweep --dist uniform --costs 0,0.1,0.2,0.5 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd, ro)
			if err != nil {
				return err
			}

			cfg := mf.configuration(cmd)
			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
				return fmt.Errorf("%w: %v", calculation.ErrInvalidParameters, err)
			}
			model := cfg.Models[0]
			params := cfg.Parameters(model)
			seed := calculation.ResolveSeed(mf.seed)

			dist, err := calculation.NewDistribution(model.Distribution, seed)
			if err != nil {
				return err
			}
			r.logObserved(model.Name, calculation.ObservedWages(dist))
			sample, err := calculation.DrawSample(dist, params.SampleSize)
			if err != nil {
				return err
			}
			r.logger.Infof("sweeping %d search costs (N=%d, seed=%d)", len(costs), sample.Len(), seed)

			points, err := r.solver.SweepSearchCost(params, sample, costs)
			if err != nil {
				return err
			}
			return r.report(&domain.ModelComparison{Sweep: points}, rep)
		},
	}

	mf.register(cmd)
	rep.register(cmd, "console")
	cmd.Flags().Float64SliceVar(&costs, "costs", []float64{0, 0.05, 0.1, 0.2, 0.5, 1}, "search costs to solve for")
	return cmd
}

func buildValidateCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a model configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d model(s) OK\n", configFile, len(cfg.Models))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "mccall.yaml", "config file path")
	return cmd
}

func buildInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example model configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if err := parser.SaveToFile(parser.CreateExampleConfiguration(), path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "mccall.yaml", "where to write the example config")
	return cmd
}
