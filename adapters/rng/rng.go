package rng

import (
	"context"
	"math/rand/v2"

	"abkit/domain/core"
	"abkit/ports"

	"lukechampine.com/frand"
)

// Adapter implements ports.RNGPort. Seeded streams run ChaCha8 keyed by
// SHA-256(name, seed); entropy streams draw from frand.
type Adapter struct{}

var _ ports.RNGPort = (*Adapter)(nil)

// NewAdapter creates a new RNG adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewChaCha8(core.SeedKey(name, seed))), nil
}

// EntropyStream creates a generator backed by frand's cryptographically seeded source
func (a *Adapter) EntropyStream(ctx context.Context) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(frand.NewSource()), nil
}

// ValidateSeed replays the named stream and compares its first Float64 draws
// against expected.
func (a *Adapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	stream, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		if got := stream.Float64(); got != want {
			return core.NewSeedMismatchError(name, i, got, want)
		}
	}
	return nil
}

// Stream picks a seeded stream when seed is non-zero and an entropy stream otherwise
func Stream(ctx context.Context, port ports.RNGPort, name string, seed int64) (*rand.Rand, error) {
	if seed == 0 {
		return port.EntropyStream(ctx)
	}
	return port.SeededStream(ctx, name, seed)
}
