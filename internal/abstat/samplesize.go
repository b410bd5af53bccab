package abstat

import (
	"math"

	"abkit/domain/core"
)

// MinSampleSize returns the minimum number of observations per group needed to
// detect an absolute lift of mde over the baseline conversion rate bcr with
// the given power and two-sided significance level:
//
//	2 * p * (1 - p) * (Z_beta + Z_alpha)^2 / mde^2,  p = (bcr + bcr + mde) / 2
//
// The result is real valued; use RequiredSampleSize to provision whole units.
func MinSampleSize(bcr, mde, power, sigLevel float64) (float64, error) {
	if err := checkOpenUnit("bcr", bcr); err != nil {
		return 0, err
	}
	if mde == 0 || math.IsNaN(mde) || math.IsInf(mde, 0) {
		return 0, core.NewEffectSizeError(mde)
	}
	if err := checkClosedUnit("bcr+mde", bcr+mde); err != nil {
		return 0, err
	}
	if err := checkOpenUnit("power", power); err != nil {
		return 0, err
	}
	if err := checkOpenUnit("sigLevel", sigLevel); err != nil {
		return 0, err
	}

	zBeta := NormalQuantile(power)
	zAlpha := NormalQuantile(1 - sigLevel/2)

	pooled := (bcr + bcr + mde) / 2

	return 2 * pooled * (1 - pooled) * math.Pow(zBeta+zAlpha, 2) / (mde * mde), nil
}

// RequiredSampleSize rounds MinSampleSize up to the next whole observation
func RequiredSampleSize(bcr, mde, power, sigLevel float64) (int, error) {
	n, err := MinSampleSize(bcr, mde, power, sigLevel)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(n)), nil
}
