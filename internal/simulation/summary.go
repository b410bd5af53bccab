package simulation

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes the distribution of simulated p-values
type Summary struct {
	Count      int     `json:"count" yaml:"count"`
	Mean       float64 `json:"mean" yaml:"mean"`
	StdDev     float64 `json:"std_dev" yaml:"std_dev"`
	Median     float64 `json:"median" yaml:"median"`
	P5         float64 `json:"p5" yaml:"p5"`
	P95        float64 `json:"p95" yaml:"p95"`
	RejectRate float64 `json:"reject_rate" yaml:"reject_rate"` // share of values below the significance level
}

// Summarize computes descriptive statistics of values and the share that
// falls below sigLevel. For p-values from an A/A plan the reject rate
// estimates the false positive rate, for an A/B plan the empirical power.
func Summarize(values []float64, sigLevel float64) (Summary, error) {
	data := stats.Float64Data(values)

	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize median: %w", err)
	}
	p5, err := stats.PercentileNearestRank(data, 5)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize p5: %w", err)
	}
	p95, err := stats.PercentileNearestRank(data, 95)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize p95: %w", err)
	}

	var stdDev float64
	if len(values) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return Summary{}, fmt.Errorf("summarize std dev: %w", err)
		}
	}

	rejected := 0
	for _, v := range values {
		if v < sigLevel {
			rejected++
		}
	}

	return Summary{
		Count:      len(values),
		Mean:       mean,
		StdDev:     stdDev,
		Median:     median,
		P5:         p5,
		P95:        p95,
		RejectRate: float64(rejected) / float64(len(values)),
	}, nil
}
