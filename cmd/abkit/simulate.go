package main

import (
	"context"
	"math/rand/v2"
	"path/filepath"

	"abkit/adapters/excel"
	"abkit/adapters/rng"
	"abkit/adapters/terminal"
	"abkit/domain/core"
	"abkit/domain/experiment"
	"abkit/internal/abstat"
	"abkit/internal/errors"
	"abkit/internal/simulation"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// seriesInput collects the flags shared by series and track
type seriesInput struct {
	engagements []int
	successes   []int
	rate        float64
}

func (in *seriesInput) bind(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&in.engagements, "engagements", nil, "Engagements per period, comma separated")
	cmd.Flags().IntSliceVar(&in.successes, "successes", nil, "Observed successes per period, comma separated")
	cmd.Flags().Float64Var(&in.rate, "rate", 0, "Generate successes at this true rate in [0,1] instead of --successes")
	_ = cmd.MarkFlagRequired("engagements")
	cmd.MarkFlagsMutuallyExclusive("successes", "rate")
}

// build returns the periods and the shuffled Bernoulli series
func (in *seriesInput) build(cmd *cobra.Command, stream *rand.Rand) ([]experiment.Period, []int, error) {
	if cmd.Flags().Changed("rate") {
		if !(in.rate >= 0 && in.rate <= 1) {
			return nil, nil, core.NewProbabilityError("rate", in.rate)
		}
		return simulation.SimulateSeries(stream, in.engagements, in.rate)
	}
	if in.successes == nil {
		return nil, nil, errors.InvalidInput("either --successes or --rate is required")
	}
	series, err := abstat.BernoulliSeries(in.engagements, in.successes, stream)
	if err != nil {
		return nil, nil, err
	}
	periods := make([]experiment.Period, len(in.engagements))
	for i := range periods {
		periods[i] = experiment.Period{Engagements: in.engagements[i], Successes: in.successes[i]}
	}
	return periods, series, nil
}

func newSeriesCmd(app *cli) *cobra.Command {
	var in seriesInput

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Expand per-period counts into a shuffled 0/1 outcome series",
		Long: `Turn aggregate engagement and success counts into a sequence of individual
outcomes, shuffled within each period. With --rate the successes are drawn
from a binomial distribution first.

Example: abkit series --engagements 10,10 --successes 3,7 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := rng.Stream(cmd.Context(), app.rng, "series", app.seed)
			if err != nil {
				return err
			}
			periods, series, err := in.build(cmd, stream)
			if err != nil {
				return err
			}
			return app.print(cmd, struct {
				Periods []experiment.Period `json:"periods" yaml:"periods"`
				Series  []int               `json:"series" yaml:"series,flow"`
			}{periods, series})
		},
	}

	in.bind(cmd)
	return cmd
}

func newTrackCmd(app *cli) *cobra.Command {
	var in seriesInput
	var baseline, sigLevel float64
	var out string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Chart cumulative successes against the band expected at a baseline rate",
		Long: `Build the outcome series, follow its cumulative successes step by step and write
a workbook with the "Cumulative bounds" and "Experiment over time" line charts.

Example: abkit track --engagements 500,500,500 --rate 0.12 --baseline 0.1 --out track.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := rng.Stream(cmd.Context(), app.rng, "track", app.seed)
			if err != nil {
				return err
			}
			periods, series, err := in.build(cmd, stream)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("baseline") {
				_, successes := experiment.SplitPeriods(periods)
				if len(series) == 0 {
					return errors.InvalidInput("cannot track an empty series")
				}
				baseline = float64(lo.Sum(successes)) / float64(len(series))
			}

			track, err := simulation.Track(series, baseline, app.sigLevel(cmd, sigLevel))
			if err != nil {
				return err
			}

			path := out
			if !filepath.IsAbs(path) {
				path = filepath.Join(app.cfg.Output.Dir, path)
			}
			if err := writeWorkbook(track, path); err != nil {
				return err
			}

			last := track.Len() - 1
			return app.print(cmd, struct {
				Steps     int                 `json:"steps" yaml:"steps"`
				Baseline  float64             `json:"baseline" yaml:"baseline"`
				Successes float64             `json:"successes" yaml:"successes"`
				Expected  float64             `json:"expected" yaml:"expected"`
				Band      experiment.Interval `json:"band" yaml:"band"`
				FirstExit int                 `json:"first_exit" yaml:"first_exit"`
				Workbook  string              `json:"workbook" yaml:"workbook"`
			}{
				Steps:     track.Len(),
				Baseline:  baseline,
				Successes: track.Cumulative[last],
				Expected:  track.Expected[last],
				Band:      track.Limits()[last],
				FirstExit: track.FirstExit,
				Workbook:  path,
			})
		},
	}

	in.bind(cmd)
	cmd.Flags().Float64Var(&baseline, "baseline", 0, "Baseline rate of the expected band (default observed rate)")
	cmd.Flags().Float64Var(&sigLevel, "sig-level", 0, "Significance level (default ABKIT_SIG_LEVEL)")
	cmd.Flags().StringVar(&out, "out", "track.xlsx", "Workbook path, relative to ABKIT_OUTPUT_DIR")
	return cmd
}

func writeWorkbook(track *simulation.CumulativeTrack, path string) error {
	writer := excel.NewChartWriter()
	defer func() {
		if err := writer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := writer.WriteCumulative(track); err != nil {
		return errors.Wrapf(err, "failed to chart cumulative bounds of %d steps", track.Len())
	}
	if err := writer.WriteExperiment(track); err != nil {
		return errors.Wrapf(err, "failed to chart experiment of %d steps", track.Len())
	}
	return writer.Save(path)
}

func newSimulateCmd(app *cli) *cobra.Command {
	var plan simulation.Plan
	var sigLevel float64
	var runs, bins int
	var histogram bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay an experiment many times and summarise the p-values",
		Long: `Draw control and test successes from binomial distributions for many runs of
the same experiment and report the distribution of one-sided p-values. With
--lift 0 the reject rate estimates the false positive rate, otherwise the power.
When --sample-size is omitted the planned minimum sample size is used.

Example: abkit simulate --baseline 0.1 --lift 0.02 --runs 2000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan.SigLevel = app.sigLevel(cmd, sigLevel)
			if !cmd.Flags().Changed("runs") {
				runs = app.cfg.Simulation.Runs
			}
			if !cmd.Flags().Changed("bins") {
				bins = app.cfg.Simulation.HistBins
			}
			if plan.SampleSize == 0 {
				n, err := abstat.RequiredSampleSize(plan.Baseline, plan.Lift, app.cfg.Stats.Power, plan.SigLevel)
				if err != nil {
					return errors.Wrapf(err, "cannot plan a sample size for baseline %g and lift %g, pass --sample-size", plan.Baseline, plan.Lift)
				}
				plan.SampleSize = n
			}

			ctx := cmd.Context()
			if timeout := app.cfg.Simulation.Timeout; timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			stream, err := rng.Stream(ctx, app.rng, "simulate", app.seed)
			if err != nil {
				return err
			}
			result, err := simulation.SimulatePValues(ctx, stream, plan, runs)
			if err != nil {
				return err
			}
			summary, err := simulation.Summarize(result.PValues, plan.SigLevel)
			if err != nil {
				return err
			}

			if histogram {
				if err := terminal.PrintHistogram(cmd.ErrOrStderr(), result.PValues, bins, terminal.DefaultWidth); err != nil {
					return err
				}
			}

			return app.print(cmd, struct {
				Result  *simulation.Result `json:"result" yaml:"result"`
				Summary simulation.Summary `json:"summary" yaml:"summary"`
			}{result, summary})
		},
	}

	cmd.Flags().Float64Var(&plan.Baseline, "baseline", 0.1, "True control conversion rate")
	cmd.Flags().Float64Var(&plan.Lift, "lift", 0, "True test rate minus the baseline")
	cmd.Flags().IntVar(&plan.SampleSize, "sample-size", 0, "Observations per arm (default planned minimum)")
	cmd.Flags().Float64Var(&sigLevel, "sig-level", 0, "Significance level (default ABKIT_SIG_LEVEL)")
	cmd.Flags().IntVar(&runs, "runs", 0, "Number of replays (default ABKIT_SIM_RUNS)")
	cmd.Flags().IntVar(&bins, "bins", 0, "Histogram bins (default ABKIT_HIST_BINS)")
	cmd.Flags().BoolVar(&histogram, "histogram", true, "Print a p-value histogram to stderr")
	return cmd
}
