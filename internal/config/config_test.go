package config

import (
	"testing"
	"time"

	"abkit/internal/errors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Stats.SigLevel)
	assert.Equal(t, 0.8, cfg.Stats.Power)
	assert.True(t, cfg.Stats.TwoTailed)
	assert.Equal(t, int64(0), cfg.Simulation.Seed)
	assert.Equal(t, 1000, cfg.Simulation.Runs)
	assert.Equal(t, 20, cfg.Simulation.HistBins)
	assert.Equal(t, time.Duration(0), cfg.Simulation.Timeout)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, zerolog.InfoLevel, cfg.ZerologLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ABKIT_SIG_LEVEL", "0.1")
	t.Setenv("ABKIT_POWER", "0.9")
	t.Setenv("ABKIT_TWO_TAILED", "false")
	t.Setenv("ABKIT_SEED", "20240517")
	t.Setenv("ABKIT_SIM_RUNS", "250")
	t.Setenv("ABKIT_HIST_BINS", "8")
	t.Setenv("ABKIT_SIM_TIMEOUT", "30s")
	t.Setenv("ABKIT_OUTPUT_DIR", "/tmp/abkit")
	t.Setenv("ABKIT_OUTPUT_FORMAT", "JSON")
	t.Setenv("ABKIT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Stats.SigLevel)
	assert.Equal(t, 0.9, cfg.Stats.Power)
	assert.False(t, cfg.Stats.TwoTailed)
	assert.Equal(t, int64(20240517), cfg.Simulation.Seed)
	assert.Equal(t, 250, cfg.Simulation.Runs)
	assert.Equal(t, 8, cfg.Simulation.HistBins)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Timeout)
	assert.Equal(t, "/tmp/abkit", cfg.Output.Dir)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, zerolog.DebugLevel, cfg.ZerologLevel())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"sig level too large", "ABKIT_SIG_LEVEL", "1.5"},
		{"sig level zero", "ABKIT_SIG_LEVEL", "0"},
		{"power one", "ABKIT_POWER", "1"},
		{"negative runs", "ABKIT_SIM_RUNS", "-3"},
		{"zero bins", "ABKIT_HIST_BINS", "0"},
		{"negative timeout", "ABKIT_SIM_TIMEOUT", "-1s"},
		{"unknown format", "ABKIT_OUTPUT_FORMAT", "csv"},
		{"unknown log level", "ABKIT_LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestUnparseableValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("ABKIT_SIM_RUNS", "many")
	t.Setenv("ABKIT_TWO_TAILED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Simulation.Runs)
	assert.True(t, cfg.Stats.TwoTailed)
}
