package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidSampleSize  = errors.New("invalid sample size")
	ErrInvalidProbability = errors.New("invalid probability")
	ErrInvalidEffectSize  = errors.New("invalid effect size")
	ErrInvalidGroupType   = errors.New("invalid group type")
	ErrLengthMismatch     = errors.New("length mismatch")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewSampleSizeError(field string, n int) error {
	return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidSampleSize, field, n)
}

func NewProbabilityError(field string, value float64) error {
	return fmt.Errorf("%w: %s=%g is outside the allowed range", ErrInvalidProbability, field, value)
}

func NewEffectSizeError(mde float64) error {
	return fmt.Errorf("%w: minimum detectable effect must be non-zero, got %g", ErrInvalidEffectSize, mde)
}

func NewGroupTypeError(value string) error {
	return fmt.Errorf("%w: %q (expected control or test)", ErrInvalidGroupType, value)
}

func NewLengthMismatchError(reason string) error {
	return fmt.Errorf("%w: %s", ErrLengthMismatch, reason)
}

func NewSeedMismatchError(name string, index int, got, want float64) error {
	return fmt.Errorf("%w: stream %s draw %d produced %g, expected %g", ErrSeedMismatch, name, index, got, want)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSampleSize) ||
		errors.Is(err, ErrInvalidProbability) ||
		errors.Is(err, ErrInvalidEffectSize) ||
		errors.Is(err, ErrInvalidGroupType) ||
		errors.Is(err, ErrLengthMismatch)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrSeedMismatch)
}
