// Package cli wires the solver, configuration and formatters into the mccall
// command tree:
//
//	mccall
//	├── solve      solve one model from flags, or every model in a config file
//	├── demo       the uniform and truncated-normal reference instances
//	├── sweep      reservation wage across a grid of search costs
//	├── validate   check a config file without solving
//	└── init       write an example config file
//
// Logs go to stderr through a tint slog handler; reports go to stdout.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpgo/mccall/internal/calculation"
	"github.com/rpgo/mccall/internal/domain"
	"github.com/rpgo/mccall/internal/metrics"
	"github.com/rpgo/mccall/internal/output"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	logLevel string
	noColor  bool
	metrics  bool
}

// BuildCLI assembles the root command.
func BuildCLI() *cobra.Command {
	ro := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "mccall",
		Short: "Reservation wages for the McCall job search model",
		Long: `mccall solves the McCall job search model by Monte Carlo fixed-point
iteration on the value of unemployment:

  VU = -c + beta * E[max(w/(1-beta), VU)],   R = (1-beta) * VU

The wage sample is drawn once per solve, so a fixed seed gives identical results.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&ro.noColor, "no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().BoolVar(&ro.metrics, "metrics", false, "print solver metrics after the run")

	rootCmd.AddCommand(buildSolveCommand(ro))
	rootCmd.AddCommand(buildDemoCommand(ro))
	rootCmd.AddCommand(buildSweepCommand(ro))
	rootCmd.AddCommand(buildValidateCommand())
	rootCmd.AddCommand(buildInitCommand())

	return rootCmd
}

// runner carries what a single command invocation needs.
type runner struct {
	solver   *calculation.Solver
	logger   calculation.Logger
	registry *prometheus.Registry
	out      io.Writer
	metrics  bool
}

func newRunner(cmd *cobra.Command, ro *rootOptions) (*runner, error) {
	level, err := parseLevel(ro.logLevel)
	if err != nil {
		return nil, err
	}
	logger := calculation.NewSlogLogger(slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    ro.noColor,
	})))

	registry := prometheus.NewRegistry()
	solver := calculation.NewSolver()
	solver.SetLogger(logger)
	solver.AddObserver(metrics.NewCollector(registry))

	return &runner{
		solver:   solver,
		logger:   logger,
		registry: registry,
		out:      cmd.OutOrStdout(),
		metrics:  ro.metrics,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// solveModels solves every model in the configuration in order. With trace set,
// each result carries its VU estimate after every iteration.
func (r *runner) solveModels(cfg *domain.Configuration, trace bool) (*domain.ModelComparison, error) {
	comparison := &domain.ModelComparison{}
	for _, model := range cfg.Models {
		params := cfg.Parameters(model)
		seed := calculation.ResolveSeed(cfg.Settings(model).Seed)

		dist, err := calculation.NewDistribution(model.Distribution, seed)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", model.Name, err)
		}
		observed := calculation.ObservedWages(dist)
		r.logObserved(model.Name, observed)
		r.logger.Infof("solving %s (beta=%g, c=%g, N=%d, seed=%d)", model.Name, params.Beta, params.SearchCost, params.SampleSize, seed)

		var extra []calculation.Observer
		tracer := &calculation.TraceObserver{}
		if trace {
			extra = append(extra, tracer)
		}
		res, err := r.solver.Solve(params, dist, extra...)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", model.Name, err)
		}
		mr := domain.ModelResult{
			Name:         model.Name,
			Parameters:   params,
			Distribution: model.Distribution,
			Seed:         seed,
			Result:       res,
			Observed:     observed,
		}
		if trace {
			mr.Trace = tracer.Values
		}
		comparison.Models = append(comparison.Models, mr)
	}
	return comparison, nil
}

func (r *runner) logObserved(name string, ds *domain.WageDataSet) {
	if ds == nil {
		return
	}
	st := ds.Statistics
	r.logger.Infof("%s: loaded %d wages from %s (mean=%.4f, median=%.4f, sd=%.4f, range=[%.4f, %.4f])",
		name, st.Count, ds.Source, st.Mean, st.Median, st.StdDev, st.Min, st.Max)
	if ds.SkippedRows > 0 {
		r.logger.Warnf("%s: skipped %d malformed rows in %s", name, ds.SkippedRows, ds.Source)
	}
}

// report renders results, optionally saves them, and enforces strict convergence.
func (r *runner) report(results *domain.ModelComparison, ro reportOptions) error {
	if err := output.Render(r.out, results, ro.format); err != nil {
		return err
	}
	if ro.saveDir != "" {
		path, err := output.GenerateReport(results, ro.format, ro.saveDir)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		r.logger.Infof("report saved to %s", path)
	}
	if r.metrics {
		fmt.Fprintln(r.out)
		if err := metrics.WriteText(r.out, r.registry); err != nil {
			return err
		}
	}
	if ro.strict {
		for _, m := range results.Models {
			if err := calculation.RequireConverged(m.Result); err != nil {
				return fmt.Errorf("model %q: %w", m.Name, err)
			}
		}
		for _, p := range results.Sweep {
			if err := calculation.RequireConverged(p.Result); err != nil {
				return fmt.Errorf("search cost %g: %w", p.SearchCost, err)
			}
		}
	}
	return nil
}

// reportOptions are the output flags shared by solving commands.
type reportOptions struct {
	format  string
	saveDir string
	strict  bool
}

func (ro *reportOptions) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&ro.format, "format", "f", defaultFormat,
		"output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVar(&ro.saveDir, "save-dir", "", "also save the report to a timestamped file in this directory")
	cmd.Flags().BoolVar(&ro.strict, "strict", false, "fail when any solve hits the iteration cap")
}
