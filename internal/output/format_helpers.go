package output

import (
	"fmt"
	"strconv"

	"github.com/rpgo/mccall/internal/domain"
	"github.com/rpgo/mccall/pkg/decimal"
)

// FormatValue rounds v half away from zero to the given number of places.
// Non-finite values are printed as Go formats them.
func FormatValue(v float64, places int32) string {
	return decimal.FormatFloat(v, places)
}

// FormatWage formats a wage or value with four decimals.
func FormatWage(v float64) string { return FormatValue(v, 4) }

// DescribeDistribution renders a distribution spec as a short label.
func DescribeDistribution(d domain.DistributionSpec) string {
	switch d.Type {
	case domain.DistUniform:
		return fmt.Sprintf("uniform[%g, %g]", d.Low, d.High)
	case domain.DistTruncatedNormal:
		lower, upper := "-inf", "inf"
		if d.Lower != nil {
			lower = strconv.FormatFloat(*d.Lower, 'g', -1, 64)
		}
		if d.Upper != nil {
			upper = strconv.FormatFloat(*d.Upper, 'g', -1, 64)
		}
		return fmt.Sprintf("truncated_normal(mean=%g, sd=%g)[%s, %s]", d.Mean, d.StdDev, lower, upper)
	case domain.DistLogNormal:
		return fmt.Sprintf("lognormal(mu=%g, sigma=%g)", d.Mu, d.Sigma)
	case domain.DistConstant:
		return fmt.Sprintf("constant(%g)", d.Value)
	case domain.DistEmpirical:
		return fmt.Sprintf("empirical(%s)", d.File)
	default:
		return d.Type
	}
}
