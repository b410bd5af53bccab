package abstat

import (
	"math"

	"abkit/domain/core"
	"abkit/domain/experiment"
)

// CriticalZ returns the standard normal quantile for the given significance
// level: 1 - sigLevel/2 when twoTailed, 1 - sigLevel otherwise.
func CriticalZ(sigLevel float64, twoTailed bool) (float64, error) {
	if err := checkOpenUnit("sigLevel", sigLevel); err != nil {
		return 0, err
	}

	area := 1 - sigLevel
	if twoTailed {
		area = 1 - sigLevel/2
	}
	return NormalQuantile(area), nil
}

// ConfidenceInterval returns the two-sided interval
// sampleMean ± z * sampleStd / sqrt(sampleSize).
func ConfidenceInterval(sampleMean, sampleStd float64, sampleSize int, sigLevel float64) (experiment.Interval, error) {
	if sampleSize <= 0 {
		return experiment.Interval{}, core.NewSampleSizeError("sampleSize", sampleSize)
	}
	if math.IsNaN(sampleMean) || math.IsInf(sampleMean, 0) {
		return experiment.Interval{}, core.NewProbabilityError("sampleMean", sampleMean)
	}
	if !(sampleStd >= 0) || math.IsInf(sampleStd, 0) {
		return experiment.Interval{}, core.NewProbabilityError("sampleStd", sampleStd)
	}

	z, err := CriticalZ(sigLevel, true)
	if err != nil {
		return experiment.Interval{}, err
	}

	margin := z * sampleStd / math.Sqrt(float64(sampleSize))
	return experiment.Interval{
		Lower: sampleMean - margin,
		Upper: sampleMean + margin,
	}, nil
}
