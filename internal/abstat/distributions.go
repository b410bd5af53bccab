package abstat

import (
	"math"

	"abkit/domain/core"
	"abkit/domain/experiment"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultSigLevel is the conventional significance level (alpha)
	DefaultSigLevel = 0.05
	// DefaultPower is the conventional target power (1 - beta)
	DefaultPower = 0.8
)

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// NormalSurvival computes the upper tail probability 1 - CDF(x) for standard normal
func NormalSurvival(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// GroupDistribution returns the sampling distribution of the observed
// difference for one arm: centred on zero for the control group and on dHat
// for the test group, with the pooled standard error as its spread.
func GroupDistribution(stderr, dHat float64, group experiment.GroupType) (distuv.Normal, error) {
	if !(stderr > 0) || math.IsInf(stderr, 0) {
		return distuv.Normal{}, core.NewProbabilityError("stderr", stderr)
	}
	if math.IsNaN(dHat) || math.IsInf(dHat, 0) {
		return distuv.Normal{}, core.NewProbabilityError("dHat", dHat)
	}

	var mean float64
	switch group {
	case experiment.Control:
		mean = 0
	case experiment.Test:
		mean = dHat
	default:
		return distuv.Normal{}, core.NewGroupTypeError(group.String())
	}

	return distuv.Normal{Mu: mean, Sigma: stderr}, nil
}

// checkOpenUnit validates that v lies strictly inside (0, 1)
func checkOpenUnit(field string, v float64) error {
	if !(v > 0 && v < 1) {
		return core.NewProbabilityError(field, v)
	}
	return nil
}

// checkClosedUnit validates that v lies inside [0, 1]
func checkClosedUnit(field string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return core.NewProbabilityError(field, v)
	}
	return nil
}
