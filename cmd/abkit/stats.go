package main

import (
	"abkit/domain/experiment"
	"abkit/internal/abstat"

	"github.com/spf13/cobra"
)

func newPooledCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pooled [nA] [nB] [xA] [xB]",
		Short: "Pooled success probability and pooled standard error of two groups",
		Long: `Pool the successes of two groups and report the shared probability and the
standard error of the difference in proportions.

Example: abkit pooled 1000 1000 100 120`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts([]string{"nA", "nB", "xA", "xB"}, args)
			if err != nil {
				return err
			}
			p, err := abstat.PooledProbability(v[0], v[1], v[2], v[3])
			if err != nil {
				return err
			}
			se, err := abstat.PooledStandardError(v[0], v[1], v[2], v[3])
			if err != nil {
				return err
			}
			return app.print(cmd, map[string]float64{
				"pooled_probability":    p,
				"pooled_standard_error": se,
			})
		},
	}
}

func newZValCmd(app *cli) *cobra.Command {
	var sigLevel float64
	var oneTailed bool

	cmd := &cobra.Command{
		Use:   "zval",
		Short: "Critical z value for a significance level",
		Long: `Report the standard normal quantile bounding the rejection region.

Example: abkit zval --sig-level 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alpha := app.sigLevel(cmd, sigLevel)
			twoTailed := app.cfg.Stats.TwoTailed
			if cmd.Flags().Changed("one-tailed") {
				twoTailed = !oneTailed
			}
			z, err := abstat.CriticalZ(alpha, twoTailed)
			if err != nil {
				return err
			}
			return app.print(cmd, struct {
				SigLevel  float64 `json:"sig_level" yaml:"sig_level"`
				TwoTailed bool    `json:"two_tailed" yaml:"two_tailed"`
				Z         float64 `json:"z" yaml:"z"`
			}{alpha, twoTailed, z})
		},
	}

	cmd.Flags().Float64Var(&sigLevel, "sig-level", 0, "Significance level (default ABKIT_SIG_LEVEL)")
	cmd.Flags().BoolVar(&oneTailed, "one-tailed", false, "Use a one-tailed region")
	return cmd
}

func newIntervalCmd(app *cli) *cobra.Command {
	var sigLevel float64

	cmd := &cobra.Command{
		Use:   "interval [mean] [std] [n]",
		Short: "Two-sided confidence interval around a sample mean",
		Long: `Report mean ± z * std / sqrt(n).

Example: abkit interval 0.11 0.3 400 --sig-level 0.05`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFloats([]string{"mean", "std"}, args[:2])
			if err != nil {
				return err
			}
			n, err := parseInts([]string{"n"}, args[2:])
			if err != nil {
				return err
			}
			interval, err := abstat.ConfidenceInterval(f[0], f[1], n[0], app.sigLevel(cmd, sigLevel))
			if err != nil {
				return err
			}
			return app.print(cmd, interval)
		},
	}

	cmd.Flags().Float64Var(&sigLevel, "sig-level", 0, "Significance level (default ABKIT_SIG_LEVEL)")
	return cmd
}

func newSampleSizeCmd(app *cli) *cobra.Command {
	var sigLevel, power float64

	cmd := &cobra.Command{
		Use:   "samplesize [baseline-rate] [min-detectable-effect]",
		Short: "Minimum sample size per group to detect an effect",
		Long: `Plan an experiment: the per-group sample size needed to detect an absolute
change of the conversion rate with the requested power.

Example: abkit samplesize 0.1 0.02 --power 0.8 --sig-level 0.05`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFloats([]string{"baseline-rate", "min-detectable-effect"}, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("power") {
				power = app.cfg.Stats.Power
			}
			alpha := app.sigLevel(cmd, sigLevel)

			exact, err := abstat.MinSampleSize(f[0], f[1], power, alpha)
			if err != nil {
				return err
			}
			perGroup, err := abstat.RequiredSampleSize(f[0], f[1], power, alpha)
			if err != nil {
				return err
			}
			return app.print(cmd, struct {
				MinSampleSize float64 `json:"min_sample_size" yaml:"min_sample_size"`
				PerGroup      int     `json:"per_group" yaml:"per_group"`
				Total         int     `json:"total" yaml:"total"`
			}{exact, perGroup, 2 * perGroup})
		},
	}

	cmd.Flags().Float64Var(&sigLevel, "sig-level", 0, "Significance level (default ABKIT_SIG_LEVEL)")
	cmd.Flags().Float64Var(&power, "power", 0, "Target power (default ABKIT_POWER)")
	return cmd
}

func newPValueCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pvalue [nA] [nB] [pA] [dHat]",
		Short: "One-sided p-value of an observed lift",
		Long: `Report the right-tail p-value of the observed difference dHat between the test
and control conversion rates.

Example: abkit pvalue 1000 1000 0.1 0.02`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts([]string{"nA", "nB"}, args[:2])
			if err != nil {
				return err
			}
			f, err := parseFloats([]string{"pA", "dHat"}, args[2:])
			if err != nil {
				return err
			}
			p, err := abstat.PValue(n[0], n[1], f[0], f[1])
			if err != nil {
				return err
			}
			return app.print(cmd, map[string]float64{"p_value": p})
		},
	}
}

func newAnalyzeCmd(app *cli) *cobra.Command {
	var sigLevel float64

	cmd := &cobra.Command{
		Use:   "analyze [control-n] [control-x] [test-n] [test-x]",
		Short: "Full report for an observed control/test pair",
		Long: `Combine pooled statistics, the confidence interval on the lift, the p-value and
the achieved power into one report.

Example: abkit analyze 1000 100 1000 120`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts([]string{"control-n", "control-x", "test-n", "test-x"}, args)
			if err != nil {
				return err
			}
			report, err := abstat.Analyze(
				experiment.Sample{N: v[0], X: v[1]},
				experiment.Sample{N: v[2], X: v[3]},
				app.sigLevel(cmd, sigLevel),
			)
			if err != nil {
				return err
			}
			return app.print(cmd, report)
		},
	}

	cmd.Flags().Float64Var(&sigLevel, "sig-level", 0, "Significance level (default ABKIT_SIG_LEVEL)")
	return cmd
}

// sigLevel returns the flag value when set and the configured default otherwise
func (c *cli) sigLevel(cmd *cobra.Command, flagValue float64) float64 {
	if cmd.Flags().Changed("sig-level") {
		return flagValue
	}
	return c.cfg.Stats.SigLevel
}
