package abstat

import (
	"math"

	"abkit/domain/experiment"
)

// PooledProbability returns the combined success rate of two samples,
// (xA + xB) / (nA + nB).
func PooledProbability(nA, nB, xA, xB int) (float64, error) {
	if err := validatePair(nA, nB, xA, xB); err != nil {
		return 0, err
	}
	return float64(xA+xB) / float64(nA+nB), nil
}

// PooledStandardError returns the standard error of the difference between two
// sample proportions under the pooled estimate:
// sqrt(p * (1 - p) * (1/nA + 1/nB)).
func PooledStandardError(nA, nB, xA, xB int) (float64, error) {
	pHat, err := PooledProbability(nA, nB, xA, xB)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(pHat * (1 - pHat) * (1/float64(nA) + 1/float64(nB))), nil
}

func validatePair(nA, nB, xA, xB int) error {
	if err := (experiment.Sample{N: nA, X: xA}).Validate(); err != nil {
		return err
	}
	return (experiment.Sample{N: nB, X: xB}).Validate()
}
