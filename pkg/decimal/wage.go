package decimal

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Wage is an observed wage amount parsed with exact decimal precision.
type Wage struct {
	decimal.Decimal
}

// NewWage creates a Wage from a float64. Non-finite values become zero.
func NewWage(value float64) Wage {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Wage{decimal.NewFromFloat(value)}
}

// ParseWage parses a wage as it appears in survey exports, e.g. "14.20",
// "$1,250.00" or " 9 ".
func ParseWage(value string) (Wage, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Wage{}, err
	}
	return Wage{d}, nil
}

// Float64 returns the nearest float64.
func (w Wage) Float64() float64 {
	f, _ := w.Decimal.Float64()
	return f
}

// IsNegative checks if the wage is negative
func (w Wage) IsNegative() bool {
	return w.Decimal.IsNegative()
}

// Zero returns a zero Wage
func Zero() Wage {
	return Wage{decimal.Zero}
}

// String returns the wage with four decimals.
func (w Wage) String() string {
	return w.Decimal.StringFixed(4)
}

// FormatFloat rounds v to the given number of places for display.
// NaN and infinities are printed the way strconv does.
func FormatFloat(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return NewWage(v).StringFixed(places)
}
