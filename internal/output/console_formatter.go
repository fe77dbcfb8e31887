package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/mccall/internal/domain"
)

// ConsoleFormatter prints one line per model with the reservation wage and value.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ModelComparison) ([]byte, error) {
	var buf bytes.Buffer
	for _, m := range results.Models {
		fmt.Fprintf(&buf, "%s: R = %s (reservation wage),  VU = %s (value of unemployment)",
			m.Name, FormatWage(m.Result.ReservationWage), FormatWage(m.Result.UnemploymentValue))
		if !m.Result.Converged() {
			fmt.Fprintf(&buf, "  [not converged after %d iterations]", m.Result.Iterations)
		}
		fmt.Fprintln(&buf)
	}
	if len(results.Sweep) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "search cost -> reservation wage")
		for _, p := range results.Sweep {
			fmt.Fprintf(&buf, "  c = %s  R = %s\n", FormatWage(p.SearchCost), FormatWage(p.Result.ReservationWage))
		}
	}
	return buf.Bytes(), nil
}
