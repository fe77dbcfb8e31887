package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/mccall/internal/domain"
)

// CSVSweepExporter writes one row per search cost of a sweep.
type CSVSweepExporter struct{}

func (c CSVSweepExporter) Name() string      { return "sweep-csv" }
func (c CSVSweepExporter) Extension() string { return "csv" }

func (c CSVSweepExporter) Format(results *domain.ModelComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"SearchCost", "ReservationWage", "UnemploymentValue", "Iterations", "Status"}); err != nil {
		return nil, err
	}
	for _, p := range results.Sweep {
		row := []string{
			formatFloat(p.SearchCost),
			FormatValue(p.Result.ReservationWage, 6),
			FormatValue(p.Result.UnemploymentValue, 6),
			strconv.Itoa(p.Result.Iterations),
			p.Result.Status.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
