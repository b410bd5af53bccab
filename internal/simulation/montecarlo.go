package simulation

import (
	"context"
	"math/rand/v2"
	"time"

	"abkit/domain/core"
	"abkit/domain/experiment"
	"abkit/internal/abstat"

	"github.com/rs/zerolog/log"
)

// Plan describes a two-arm experiment to replay many times
type Plan struct {
	Baseline   float64 `json:"baseline" yaml:"baseline"`       // true control conversion rate
	Lift       float64 `json:"lift" yaml:"lift"`               // true test rate minus baseline
	SampleSize int     `json:"sample_size" yaml:"sample_size"` // observations per arm
	SigLevel   float64 `json:"sig_level" yaml:"sig_level"`
}

// Validate checks the plan parameters
func (p Plan) Validate() error {
	if !(p.Baseline >= 0 && p.Baseline <= 1) {
		return core.NewProbabilityError("baseline", p.Baseline)
	}
	if rate := p.Baseline + p.Lift; !(rate >= 0 && rate <= 1) {
		return core.NewProbabilityError("baseline+lift", rate)
	}
	if p.SampleSize <= 0 {
		return core.NewSampleSizeError("sampleSize", p.SampleSize)
	}
	if !(p.SigLevel > 0 && p.SigLevel < 1) {
		return core.NewProbabilityError("sigLevel", p.SigLevel)
	}
	return nil
}

// Result holds the p-values collected by SimulatePValues
type Result struct {
	ID      core.RunID `json:"id" yaml:"id"`
	Plan    Plan       `json:"plan" yaml:"plan"`
	PValues []float64  `json:"p_values" yaml:"-"`
}

// SimulatePValues replays plan runs times, drawing control and test successes
// from binomial distributions, and records the one-sided p-value of each run.
// The context is checked between runs.
func SimulatePValues(ctx context.Context, stream *rand.Rand, plan Plan, runs int) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if runs <= 0 {
		return nil, core.NewSampleSizeError("runs", runs)
	}

	result := &Result{
		ID:      core.NewRunID(),
		Plan:    plan,
		PValues: make([]float64, 0, runs),
	}
	started := time.Now()
	n := plan.SampleSize

	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		control := experiment.Sample{N: n, X: drawBinomial(stream, n, plan.Baseline)}
		test := experiment.Sample{N: n, X: drawBinomial(stream, n, plan.Baseline+plan.Lift)}

		p, err := abstat.PValue(n, n, control.Rate(), test.Rate()-control.Rate())
		if err != nil {
			return nil, err
		}
		result.PValues = append(result.PValues, p)
	}

	log.Info().
		Str("run_id", result.ID.String()).
		Int("runs", runs).
		Dur("elapsed", time.Since(started)).
		Msg("simulation-complete")

	return result, nil
}
