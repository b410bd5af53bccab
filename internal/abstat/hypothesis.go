package abstat

import (
	"math"

	"abkit/domain/core"
	"abkit/domain/experiment"
)

// PValue returns the one-sided p-value for an observed lift dHat between a
// control group with rate pA and a test group assumed to convert at pA + dHat.
// It is the upper tail probability of the standard normal at
// dHat / sqrt(pA(1-pA)/nA + pB(1-pB)/nB).
func PValue(nA, nB int, pA, dHat float64) (float64, error) {
	if nA <= 0 {
		return 0, core.NewSampleSizeError("nA", nA)
	}
	if nB <= 0 {
		return 0, core.NewSampleSizeError("nB", nB)
	}
	if err := checkClosedUnit("pA", pA); err != nil {
		return 0, err
	}
	pB := pA + dHat
	if err := checkClosedUnit("pA+dHat", pB); err != nil {
		return 0, err
	}

	// z is exactly zero here even when both variances vanish
	if dHat == 0 {
		return 0.5, nil
	}

	varA := pA * (1 - pA) / float64(nA)
	varB := pB * (1 - pB) / float64(nB)
	// both rates sit at 0 or 1, so z is infinite with the sign of dHat
	if varA+varB == 0 {
		if dHat > 0 {
			return 0, nil
		}
		return 1, nil
	}

	z := dHat / math.Sqrt(varA+varB)
	return NormalSurvival(z), nil
}

// Power returns the probability that the test group's sampling distribution
// lands beyond the control group's right critical value at sigLevel
// (two-sided), i.e. 1 - beta for an observed lift dHat.
func Power(stderr, dHat, sigLevel float64) (float64, error) {
	if err := checkOpenUnit("sigLevel", sigLevel); err != nil {
		return 0, err
	}

	control, err := GroupDistribution(stderr, dHat, experiment.Control)
	if err != nil {
		return 0, err
	}
	test, err := GroupDistribution(stderr, dHat, experiment.Test)
	if err != nil {
		return 0, err
	}

	right := control.Quantile(1 - sigLevel/2)
	return test.Survival(right), nil
}
