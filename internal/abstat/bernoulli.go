package abstat

import (
	"fmt"

	"abkit/domain/core"

	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Shuffler permutes n elements in place by calling swap. *math/rand/v2.Rand
// and *frand.RNG both satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// entropyShuffler uses the process-wide frand generator, which is safe for
// concurrent use.
type entropyShuffler struct{}

func (entropyShuffler) Shuffle(n int, swap func(i, j int)) { frand.Shuffle(n, swap) }

// BernoulliSeries expands per-period engagement and success counts into a flat
// series of 0/1 outcomes. Each period contributes successes[i] ones and
// engagements[i]-successes[i] zeros, shuffled within the period only; periods
// keep their order. A nil shuffler uses a cryptographically seeded generator.
func BernoulliSeries(engagements, successes []int, shuffler Shuffler) ([]int, error) {
	if len(engagements) != len(successes) {
		return nil, core.NewLengthMismatchError(fmt.Sprintf("%d engagement counts vs %d success counts", len(engagements), len(successes)))
	}
	for i := range engagements {
		if engagements[i] < 0 || successes[i] < 0 {
			return nil, core.NewLengthMismatchError(fmt.Sprintf("period %d has negative counts", i))
		}
		if successes[i] > engagements[i] {
			return nil, core.NewLengthMismatchError(fmt.Sprintf("period %d has %d successes for %d engagements", i, successes[i], engagements[i]))
		}
	}
	if shuffler == nil {
		shuffler = entropyShuffler{}
	}

	series := make([]int, 0, lo.Sum(engagements))
	for i, engaged := range engagements {
		start := len(series)
		for k := 0; k < engaged; k++ {
			outcome := 0
			if k < successes[i] {
				outcome = 1
			}
			series = append(series, outcome)
		}
		period := series[start:]
		shuffler.Shuffle(len(period), func(a, b int) {
			period[a], period[b] = period[b], period[a]
		})
	}

	return series, nil
}
