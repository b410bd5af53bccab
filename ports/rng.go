package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides random number streams for trial synthesis and simulation
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// EntropyStream creates a non-deterministic generator seeded from system entropy
	EntropyStream(ctx context.Context) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
