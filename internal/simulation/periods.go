package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"abkit/domain/core"
	"abkit/domain/experiment"
	"abkit/internal/abstat"

	"gonum.org/v1/gonum/stat/distuv"
)

// GeneratePeriods draws the number of successes for each period from a
// binomial distribution with the given true conversion rate.
func GeneratePeriods(stream *rand.Rand, engagements []int, rate float64) ([]experiment.Period, error) {
	if !(rate >= 0 && rate <= 1) {
		return nil, core.NewProbabilityError("rate", rate)
	}

	periods := make([]experiment.Period, len(engagements))
	for i, n := range engagements {
		if n < 0 {
			return nil, core.NewLengthMismatchError(fmt.Sprintf("period %d has negative engagements", i))
		}
		periods[i].Engagements = n
		if n == 0 {
			continue
		}
		periods[i].Successes = drawBinomial(stream, n, rate)
	}
	return periods, nil
}

// SimulateSeries generates periods at trueRate and flattens them into a
// Bernoulli series, shuffling each period with the same stream.
func SimulateSeries(stream *rand.Rand, engagements []int, trueRate float64) ([]experiment.Period, []int, error) {
	periods, err := GeneratePeriods(stream, engagements, trueRate)
	if err != nil {
		return nil, nil, err
	}
	e, s := experiment.SplitPeriods(periods)
	series, err := abstat.BernoulliSeries(e, s, stream)
	if err != nil {
		return nil, nil, err
	}
	return periods, series, nil
}

func drawBinomial(stream *rand.Rand, n int, p float64) int {
	switch p {
	case 0:
		return 0
	case 1:
		return n
	}
	var src rand.Source
	if stream != nil {
		src = stream
	}
	dist := distuv.Binomial{N: float64(n), P: p, Src: src}
	return int(math.Round(dist.Rand()))
}
