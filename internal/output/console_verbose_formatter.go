package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/mccall/internal/domain"
)

// ConsoleVerboseFormatter renders the full per-model report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console-verbose" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(results *domain.ModelComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "McCALL JOB SEARCH: RESERVATION WAGE ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf)

	for i, m := range results.Models {
		p := m.Parameters
		fmt.Fprintf(&buf, "MODEL %d: %s\n", i+1, m.Name)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		fmt.Fprintf(&buf, "  Discount factor (beta):  %g\n", p.Beta)
		fmt.Fprintf(&buf, "  Search cost (c):         %g\n", p.SearchCost)
		fmt.Fprintf(&buf, "  Wage distribution:       %s\n", DescribeDistribution(m.Distribution))
		fmt.Fprintf(&buf, "  Sample size:             %d (seed %d)\n", m.Result.SampleSize, m.Seed)
		fmt.Fprintf(&buf, "  Tolerance / max iter:    %g / %d\n", p.Tolerance, p.MaxIterations)
		if ds := m.Observed; ds != nil {
			st := ds.Statistics
			fmt.Fprintf(&buf, "  Observed wages:          %d rows from %s (%d skipped)\n", st.Count, ds.Source, ds.SkippedRows)
			fmt.Fprintf(&buf, "    mean %s  median %s  sd %s  range [%s, %s]\n",
				FormatWage(st.Mean), FormatWage(st.Median), FormatWage(st.StdDev), FormatWage(st.Min), FormatWage(st.Max))
		}
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "  Status:                  %s after %d iterations (|dVU| = %.3g)\n",
			m.Result.Status, m.Result.Iterations, m.Result.LastDelta)
		fmt.Fprintf(&buf, "  Reservation wage (R):    %s\n", FormatWage(m.Result.ReservationWage))
		fmt.Fprintf(&buf, "  Unemployment value (VU): %s\n", FormatWage(m.Result.UnemploymentValue))
		fmt.Fprintln(&buf)
	}

	if len(results.Sweep) > 0 {
		fmt.Fprintln(&buf, "SEARCH COST SWEEP")
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		fmt.Fprintf(&buf, "  %-12s %-12s %-12s %s\n", "cost", "R", "VU", "status")
		for _, pt := range results.Sweep {
			fmt.Fprintf(&buf, "  %-12s %-12s %-12s %s\n",
				FormatWage(pt.SearchCost), FormatWage(pt.Result.ReservationWage),
				FormatWage(pt.Result.UnemploymentValue), pt.Result.Status)
		}
		fmt.Fprintln(&buf)
	}

	if !results.AllConverged() {
		fmt.Fprintln(&buf, "WARNING: at least one model hit its iteration cap; its values are not at the fixed point.")
	}
	return buf.Bytes(), nil
}
