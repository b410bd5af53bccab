// Package abstat implements the frequentist statistics used to plan and read
// two-arm (A/B) experiments: pooled proportions and standard errors, critical
// z-values and confidence intervals, minimum sample sizes, one-sided p-values
// and synthetic Bernoulli trial series.
//
// Every function validates its inputs and returns an error wrapping one of the
// sentinel errors in abkit/domain/core instead of producing NaN.
package abstat
