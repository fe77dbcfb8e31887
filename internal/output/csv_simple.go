package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/mccall/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per model).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ModelComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Model", "Beta", "SearchCost", "Distribution", "SampleSize", "Seed", "Iterations", "Status", "ReservationWage", "UnemploymentValue", "LastDelta"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range results.Models {
		row := []string{
			m.Name,
			formatFloat(m.Parameters.Beta),
			formatFloat(m.Parameters.SearchCost),
			DescribeDistribution(m.Distribution),
			strconv.Itoa(m.Result.SampleSize),
			strconv.FormatInt(m.Seed, 10),
			strconv.Itoa(m.Result.Iterations),
			m.Result.Status.String(),
			FormatValue(m.Result.ReservationWage, 6),
			FormatValue(m.Result.UnemploymentValue, 6),
			formatFloat(m.Result.LastDelta),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
