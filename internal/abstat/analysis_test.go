package abstat

import (
	"testing"

	"abkit/domain/core"
	"abkit/domain/experiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	report, err := Analyze(experiment.Sample{N: 1000, X: 100}, experiment.Sample{N: 1000, X: 120}, DefaultSigLevel)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.InDelta(t, 0.10, report.ControlRate, 1e-12)
	assert.InDelta(t, 0.12, report.TestRate, 1e-12)
	assert.InDelta(t, 0.02, report.Lift, 1e-12)
	assert.InDelta(t, 0.11, report.PooledProbability, 1e-12)
	assert.InDelta(t, 0.013993, report.PooledSE, 1e-6)
	assert.InDelta(t, 1.959964, report.CriticalZ, 1e-5)
	assert.InDelta(t, 0.02, report.DifferenceInterval.Midpoint(), 1e-12)
	assert.True(t, report.DifferenceInterval.Contains(0))
	assert.InDelta(t, 0.07635, report.PValue, 1e-4)
	assert.InDelta(t, 0.2977, report.Power, 2e-3)
	assert.False(t, report.Significant)
}

func TestAnalyzeSignificant(t *testing.T) {
	report, err := Analyze(experiment.Sample{N: 10000, X: 1000}, experiment.Sample{N: 10000, X: 1200}, DefaultSigLevel)
	require.NoError(t, err)
	assert.True(t, report.Significant)
	assert.False(t, report.DifferenceInterval.Contains(0))
	assert.Greater(t, report.Power, 0.9)
}

func TestAnalyzeNoSuccesses(t *testing.T) {
	report, err := Analyze(experiment.Sample{N: 50, X: 0}, experiment.Sample{N: 50, X: 0}, DefaultSigLevel)
	require.NoError(t, err)
	assert.Equal(t, 0.5, report.PValue)
	assert.Equal(t, 0.0, report.Power)
	assert.False(t, report.Significant)
}

func TestAnalyzeOppositeExtremes(t *testing.T) {
	for n := 1; n <= 200; n++ {
		report, err := Analyze(experiment.Sample{N: n, X: 0}, experiment.Sample{N: 50, X: 50}, DefaultSigLevel)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, 0.0, report.PValue, "n=%d", n)
		assert.True(t, report.Significant, "n=%d", n)
	}

	report, err := Analyze(experiment.Sample{N: 50, X: 50}, experiment.Sample{N: 50, X: 0}, DefaultSigLevel)
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.PValue)
	assert.InDelta(t, -1.0, report.Lift, 1e-12)
	assert.False(t, report.Significant)
}

func TestAnalyzeRejectsInvalidInput(t *testing.T) {
	_, err := Analyze(experiment.Sample{N: 0}, experiment.Sample{N: 10, X: 1}, DefaultSigLevel)
	assert.ErrorIs(t, err, core.ErrInvalidSampleSize)

	_, err = Analyze(experiment.Sample{N: 10, X: 1}, experiment.Sample{N: 10, X: 1}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidProbability)
}

