package calculation

import (
	"fmt"
	"math"
	"strings"

	"github.com/rpgo/mccall/internal/domain"
)

// NewDistribution builds a seeded wage distribution from its configuration.
func NewDistribution(spec domain.DistributionSpec, seed int64) (WageDistribution, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Type)) {
	case domain.DistUniform:
		return NewUniform(spec.Low, spec.High, seed)
	case domain.DistTruncatedNormal:
		lower, upper := math.Inf(-1), math.Inf(1)
		if spec.Lower != nil {
			lower = *spec.Lower
		}
		if spec.Upper != nil {
			upper = *spec.Upper
		}
		return NewTruncatedNormal(spec.Mean, spec.StdDev, lower, upper, seed)
	case domain.DistLogNormal:
		return NewLogNormal(spec.Mu, spec.Sigma, seed)
	case domain.DistConstant:
		if !isFinite(spec.Value) {
			return nil, fmt.Errorf("constant wage must be finite, got %v", spec.Value)
		}
		return Constant{Value: spec.Value}, nil
	case domain.DistEmpirical:
		if spec.File == "" {
			return nil, fmt.Errorf("empirical distribution requires a wage file")
		}
		ds, err := LoadWageData(spec.File)
		if err != nil {
			return nil, err
		}
		e, err := NewEmpirical(ds.Wages, seed)
		if err != nil {
			return nil, err
		}
		e.Data = ds
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDistribution, spec.Type)
	}
}

// DistributionTypes lists the supported distribution type names.
func DistributionTypes() []string {
	return []string{
		domain.DistConstant,
		domain.DistEmpirical,
		domain.DistLogNormal,
		domain.DistTruncatedNormal,
		domain.DistUniform,
	}
}
