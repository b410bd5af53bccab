package testkit

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"abkit/adapters/rng"
)

// TrafficConfig configures synthetic daily engagement volumes
type TrafficConfig struct {
	Days          int     `json:"days"`
	DailyMean     float64 `json:"daily_mean"`
	WeekendFactor float64 `json:"weekend_factor"` // multiplier applied to days 6 and 7 of each week
	Jitter        float64 `json:"jitter"`         // relative standard deviation of daily noise
	Seed          int64   `json:"seed"`
}

// DefaultTrafficConfig returns two weeks of moderate traffic
func DefaultTrafficConfig() TrafficConfig {
	return TrafficConfig{
		Days:          14,
		DailyMean:     500,
		WeekendFactor: 0.6,
		Jitter:        0.1,
		Seed:          42,
	}
}

// TrafficGenerator produces per-period engagement counts for experiment fixtures
type TrafficGenerator struct {
	config TrafficConfig
	rng    *rand.Rand
}

// NewTrafficGenerator creates a generator on a stream seeded from config.Seed
func NewTrafficGenerator(ctx context.Context, config TrafficConfig) (*TrafficGenerator, error) {
	stream, err := rng.NewAdapter().SeededStream(ctx, "testkit-traffic", config.Seed)
	if err != nil {
		return nil, err
	}
	return &TrafficGenerator{config: config, rng: stream}, nil
}

// Engagements returns one non-negative count per day
func (g *TrafficGenerator) Engagements() []int {
	counts := make([]int, g.config.Days)
	for day := range counts {
		mean := g.config.DailyMean
		if day%7 >= 5 {
			mean *= g.config.WeekendFactor
		}
		v := math.Round(mean * (1 + g.config.Jitter*g.rng.NormFloat64()))
		if v < 0 {
			v = 0
		}
		counts[day] = int(v)
	}
	return counts
}

// Stream returns a named deterministic stream, failing the test on error
func Stream(t testing.TB, name string, seed int64) *rand.Rand {
	t.Helper()
	stream, err := rng.NewAdapter().SeededStream(context.Background(), name, seed)
	if err != nil {
		t.Fatalf("seeded stream %s: %v", name, err)
	}
	return stream
}
