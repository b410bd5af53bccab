package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"abkit/internal/abstat"
	"abkit/internal/errors"

	"github.com/rs/zerolog"
)

// Output formats accepted by the CLI
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config represents the complete application configuration
type Config struct {
	Stats      StatsConfig
	Simulation SimulationConfig
	Output     OutputConfig
	LogLevel   string
}

// StatsConfig holds defaults for tests and intervals
type StatsConfig struct {
	SigLevel  float64
	Power     float64
	TwoTailed bool
}

// SimulationConfig holds Monte Carlo and series generation settings
type SimulationConfig struct {
	Seed     int64 // 0 draws from entropy
	Runs     int
	HistBins int
	Timeout  time.Duration // 0 disables the deadline
}

// OutputConfig holds where and how results are written
type OutputConfig struct {
	Dir    string
	Format string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Stats:      *loadStatsConfig(),
		Simulation: *loadSimulationConfig(),
		Output:     *loadOutputConfig(),
		LogLevel:   strings.ToLower(getEnvOrDefault("ABKIT_LOG_LEVEL", "info")),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// ZerologLevel returns the parsed log level
func (c *Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func loadStatsConfig() *StatsConfig {
	return &StatsConfig{
		SigLevel:  getEnvFloatOrDefault("ABKIT_SIG_LEVEL", abstat.DefaultSigLevel),
		Power:     getEnvFloatOrDefault("ABKIT_POWER", abstat.DefaultPower),
		TwoTailed: getEnvBoolOrDefault("ABKIT_TWO_TAILED", true),
	}
}

func loadSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Seed:     getEnvInt64OrDefault("ABKIT_SEED", 0),
		Runs:     getEnvIntOrDefault("ABKIT_SIM_RUNS", 1000),
		HistBins: getEnvIntOrDefault("ABKIT_HIST_BINS", 20),
		Timeout:  getEnvDurationOrDefault("ABKIT_SIM_TIMEOUT", 0),
	}
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir:    getEnvOrDefault("ABKIT_OUTPUT_DIR", "."),
		Format: strings.ToLower(getEnvOrDefault("ABKIT_OUTPUT_FORMAT", FormatYAML)),
	}
}

func validateConfig(config *Config) error {
	if !(config.Stats.SigLevel > 0 && config.Stats.SigLevel < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("ABKIT_SIG_LEVEL must be in (0,1), got %g", config.Stats.SigLevel))
	}
	if !(config.Stats.Power > 0 && config.Stats.Power < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("ABKIT_POWER must be in (0,1), got %g", config.Stats.Power))
	}
	if config.Simulation.Runs <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("ABKIT_SIM_RUNS must be positive, got %d", config.Simulation.Runs))
	}
	if config.Simulation.HistBins <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("ABKIT_HIST_BINS must be positive, got %d", config.Simulation.HistBins))
	}
	if config.Simulation.Timeout < 0 {
		return errors.ConfigInvalid("ABKIT_SIM_TIMEOUT must not be negative")
	}
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Output.Format != FormatYAML && config.Output.Format != FormatJSON {
		return errors.ConfigInvalid(fmt.Sprintf("ABKIT_OUTPUT_FORMAT must be yaml or json, got %q", config.Output.Format))
	}
	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("ABKIT_LOG_LEVEL %q is not a log level", config.LogLevel))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
