package generator

import (
	"fmt"
	"math"

	apperrors "posreport/internal/errors"
)

// WeightTolerance is the allowed drift of a weight list's sum from 1.0.
const WeightTolerance = 1e-6

// ValidateWeights checks that weights are non-negative and sum to 1.0.
// Distributions are never normalised on the caller's behalf.
func ValidateWeights(weights []float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no candidates", apperrors.ErrInvalidWeightDistribution)
	}

	var sum float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weight %d is %v", apperrors.ErrInvalidWeightDistribution, i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > WeightTolerance {
		return fmt.Errorf("%w: sum is %v", apperrors.ErrInvalidWeightDistribution, sum)
	}
	return nil
}

// WeightedIndex picks a candidate index for a uniform draw r in [0, 1).
// Weights are consumed in order from a running remainder and the first
// candidate that brings it to zero or below wins. When rounding leaves the
// remainder positive after the last weight, the last candidate is chosen.
// It returns -1 only for an empty weight list.
func WeightedIndex(weights []float64, r float64) int {
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
