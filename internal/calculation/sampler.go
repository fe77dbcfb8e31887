package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/mccall/internal/domain"
)

// DrawSample takes the one Monte Carlo sample a solve works from.
func DrawSample(dist WageDistribution, n int) (domain.WageSample, error) {
	if dist == nil {
		return nil, fmt.Errorf("%w: nil wage distribution", ErrInvalidParameters)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample size must be positive, got %d", ErrInvalidParameters, n)
	}

	draws, err := dist.Sample(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSamplingFailure, err)
	}
	if len(draws) != n {
		return nil, fmt.Errorf("%w: requested %d draws, got %d", ErrSamplingFailure, n, len(draws))
	}
	for i, w := range draws {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, &SamplingError{Index: i, Value: w}
		}
	}
	return domain.WageSample(draws), nil
}
