package simulation

import (
	"fmt"
	"math"

	"abkit/domain/core"
	"abkit/domain/experiment"
	"abkit/internal/abstat"

	"github.com/montanaflynn/stats"
)

// CumulativeTrack follows the running number of successes in a Bernoulli
// series against the band expected under the baseline rate.
type CumulativeTrack struct {
	Baseline   float64   `json:"baseline" yaml:"baseline"`
	SigLevel   float64   `json:"sig_level" yaml:"sig_level"`
	Steps      []int     `json:"steps" yaml:"steps"`           // 1..len(series)
	Cumulative []float64 `json:"cumulative" yaml:"cumulative"` // running count of successes
	Expected   []float64 `json:"expected" yaml:"expected"`     // n * baseline
	Lower      []float64 `json:"lower" yaml:"lower"`
	Upper      []float64 `json:"upper" yaml:"upper"`
	FirstExit  int       `json:"first_exit" yaml:"first_exit"` // index of first step outside the band, -1 if none
}

// Len returns the number of tracked steps
func (t *CumulativeTrack) Len() int {
	return len(t.Steps)
}

// Limits returns the band as intervals, one per step
func (t *CumulativeTrack) Limits() []experiment.Interval {
	limits := make([]experiment.Interval, len(t.Lower))
	for i := range t.Lower {
		limits[i] = experiment.Interval{Lower: t.Lower[i], Upper: t.Upper[i]}
	}
	return limits
}

// Track computes the cumulative successes of series and, for every prefix
// length n, the confidence band n*p ± z*sqrt(n*p*(1-p)) around the count
// expected under the baseline rate p.
func Track(series []int, baseline, sigLevel float64) (*CumulativeTrack, error) {
	if !(baseline >= 0 && baseline <= 1) {
		return nil, core.NewProbabilityError("baseline", baseline)
	}
	if _, err := abstat.CriticalZ(sigLevel, true); err != nil {
		return nil, err
	}

	track := &CumulativeTrack{
		Baseline:  baseline,
		SigLevel:  sigLevel,
		FirstExit: -1,
	}
	if len(series) == 0 {
		return track, nil
	}

	outcomes := make(stats.Float64Data, len(series))
	for i, v := range series {
		if v != 0 && v != 1 {
			return nil, core.NewLengthMismatchError(fmt.Sprintf("outcome %d is %d, expected 0 or 1", i, v))
		}
		outcomes[i] = float64(v)
	}

	cumulative, err := stats.CumulativeSum(outcomes)
	if err != nil {
		return nil, fmt.Errorf("cumulative sum: %w", err)
	}

	n := len(series)
	track.Steps = make([]int, n)
	track.Cumulative = cumulative
	track.Expected = make([]float64, n)
	track.Lower = make([]float64, n)
	track.Upper = make([]float64, n)

	for i := 0; i < n; i++ {
		step := float64(i + 1)
		expected := step * baseline
		band, err := abstat.ConfidenceInterval(expected, math.Sqrt(step*baseline*(1-baseline)), 1, sigLevel)
		if err != nil {
			return nil, err
		}

		track.Steps[i] = i + 1
		track.Expected[i] = expected
		track.Lower[i] = band.Lower
		track.Upper[i] = band.Upper
		if track.FirstExit < 0 && !band.Contains(cumulative[i]) {
			track.FirstExit = i
		}
	}

	return track, nil
}
