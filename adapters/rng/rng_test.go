package rng

import (
	"context"
	"testing"

	"abkit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStreamIsDeterministic(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter()

	a, err := adapter.SeededStream(ctx, "bernoulli", 42)
	require.NoError(t, err)
	b, err := adapter.SeededStream(ctx, "bernoulli", 42)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestSeededStreamsDifferByName(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter()

	a, err := adapter.SeededStream(ctx, "control", 42)
	require.NoError(t, err)
	b, err := adapter.SeededStream(ctx, "test", 42)
	require.NoError(t, err)

	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestValidateSeed(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter()

	reference, err := adapter.SeededStream(ctx, "simulation", 7)
	require.NoError(t, err)
	expected := []float64{reference.Float64(), reference.Float64(), reference.Float64()}

	assert.NoError(t, adapter.ValidateSeed(ctx, "simulation", 7, expected))

	err = adapter.ValidateSeed(ctx, "simulation", 8, expected)
	assert.ErrorIs(t, err, core.ErrSeedMismatch)
}

func TestEntropyStream(t *testing.T) {
	adapter := NewAdapter()
	stream, err := adapter.EntropyStream(context.Background())
	require.NoError(t, err)

	v := stream.Float64()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestStreamSelection(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter()

	seeded, err := Stream(ctx, adapter, "series", 99)
	require.NoError(t, err)
	again, err := Stream(ctx, adapter, "series", 99)
	require.NoError(t, err)
	assert.Equal(t, seeded.Uint64(), again.Uint64())

	entropy, err := Stream(ctx, adapter, "series", 0)
	require.NoError(t, err)
	assert.NotNil(t, entropy)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAdapter().SeededStream(ctx, "x", 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewAdapter().EntropyStream(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
