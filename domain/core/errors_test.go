package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sample size", NewSampleSizeError("nA", 0), true},
		{"probability", NewProbabilityError("bcr", 1.5), true},
		{"effect size", NewEffectSizeError(0), true},
		{"group type", NewGroupTypeError("variant"), true},
		{"length mismatch", NewLengthMismatchError("2 vs 3"), true},
		{"wrapped", fmt.Errorf("planning: %w", NewEffectSizeError(0)), true},
		{"seed mismatch", NewSeedMismatchError("s", 0, 1, 2), false},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsDeterminismError(t *testing.T) {
	if !IsDeterminismError(NewSeedMismatchError("s", 3, 0.1, 0.2)) {
		t.Error("Expected seed mismatch to be a determinism error")
	}
	if IsDeterminismError(NewSampleSizeError("n", -1)) {
		t.Error("Expected sample size error not to be a determinism error")
	}
}
