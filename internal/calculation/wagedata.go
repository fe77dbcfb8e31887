package calculation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rpgo/mccall/internal/domain"
	"github.com/rpgo/mccall/pkg/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LoadWageData reads observed wages from a CSV file. The file must have a header row;
// the column named "wage" is used, or the only column when there is just one.
func LoadWageData(filePath string) (*domain.WageDataSet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	ds, err := readWageCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load wages from %s: %w", filePath, err)
	}
	ds.Source = filePath
	return ds, nil
}

func readWageCSV(r io.Reader) (*domain.WageDataSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := wageColumn(header)
	if col < 0 {
		return nil, errors.New("invalid CSV format: no \"wage\" column")
	}

	ds := &domain.WageDataSet{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) <= col {
			ds.SkippedRows++
			continue
		}
		value, err := decimal.ParseWage(record[col])
		if err != nil {
			ds.SkippedRows++
			continue
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("negative wage %s on data row %d", value, len(ds.Wages)+ds.SkippedRows+1)
		}
		ds.Wages = append(ds.Wages, value.Float64())
	}

	if len(ds.Wages) == 0 {
		return nil, errors.New("no valid wage rows")
	}
	ds.Statistics = summarizeWages(ds.Wages)
	return ds, nil
}

func wageColumn(header []string) int {
	if len(header) == 1 {
		return 0
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "wage") {
			return i
		}
	}
	return -1
}

func summarizeWages(wages []float64) domain.WageStatistics {
	sorted := append([]float64(nil), wages...)
	sort.Float64s(sorted)

	stats := domain.WageStatistics{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Count:  len(sorted),
	}
	if len(sorted) > 1 {
		stats.StdDev = stat.StdDev(sorted, nil)
	}
	return stats
}
