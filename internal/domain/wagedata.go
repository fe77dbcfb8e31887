package domain

// WageDataSet is a column of observed wages loaded from disk.
type WageDataSet struct {
	Source      string         `json:"source" yaml:"source"`
	Wages       []float64      `json:"-" yaml:"-"`
	SkippedRows int            `json:"skipped_rows" yaml:"skipped_rows"`
	Statistics  WageStatistics `json:"statistics" yaml:"statistics"`
}

// WageStatistics summarizes an observed wage column.
type WageStatistics struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"` // lower median for an even count
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Count  int     `json:"count" yaml:"count"`
}
