package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"abkit/adapters/rng"
	"abkit/internal/config"
	"abkit/internal/errors"
	"abkit/ports"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(errors.ExitCode(err))
	}
}

// cli carries the state shared by every subcommand once the root has loaded it
type cli struct {
	cfg    *config.Config
	rng    ports.RNGPort
	seed   int64
	format string
}

func newRootCmd() *cobra.Command {
	app := &cli{rng: rng.NewAdapter()}

	rootCmd := &cobra.Command{
		Use:           "abkit",
		Short:         "Frequentist A/B test statistics: sample sizes, p-values, intervals and simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WithCode(errors.CodeInvalidInput, err)
	})

	rootCmd.PersistentFlags().Int64Var(&app.seed, "seed", 0, "Random seed for reproducible draws (0 uses ABKIT_SEED, then entropy)")
	rootCmd.PersistentFlags().StringVar(&app.format, "format", "", "Output format: yaml|json (default ABKIT_OUTPUT_FORMAT)")

	rootCmd.AddCommand(
		newPooledCmd(app),
		newZValCmd(app),
		newIntervalCmd(app),
		newSampleSizeCmd(app),
		newPValueCmd(app),
		newAnalyzeCmd(app),
		newSeriesCmd(app),
		newTrackCmd(app),
		newSimulateCmd(app),
	)

	return rootCmd
}

func (c *cli) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	zerolog.SetGlobalLevel(cfg.ZerologLevel())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})

	if c.seed == 0 {
		c.seed = cfg.Simulation.Seed
	}
	if c.format == "" {
		c.format = cfg.Output.Format
	}
	if c.format != config.FormatYAML && c.format != config.FormatJSON {
		return errors.InvalidInput(fmt.Sprintf("unknown output format %q", c.format))
	}
	return nil
}

// print writes v to the command output in the configured format
func (c *cli) print(cmd *cobra.Command, v interface{}) error {
	return encode(cmd.OutOrStdout(), c.format, v)
}

func encode(w io.Writer, format string, v interface{}) error {
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func parseInts(names []string, args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("%s must be an integer, got %q", names[i], arg))
		}
		values[i] = v
	}
	return values, nil
}

func parseFloats(names []string, args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("%s must be a number, got %q", names[i], arg))
		}
		values[i] = v
	}
	return values, nil
}
