package abstat

import (
	"math"
	"testing"

	"abkit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPooledProbability(t *testing.T) {
	tests := []struct {
		name           string
		nA, nB, xA, xB int
		want           float64
		wantErr        error
	}{
		{"reference scenario", 1000, 1000, 100, 120, 0.11, nil},
		{"unequal arms", 500, 1500, 50, 300, 0.175, nil},
		{"no successes", 10, 10, 0, 0, 0, nil},
		{"all successes", 10, 20, 10, 20, 1, nil},
		{"zero control size", 0, 10, 0, 1, 0, core.ErrInvalidSampleSize},
		{"zero test size", 10, 0, 1, 0, 0, core.ErrInvalidSampleSize},
		{"successes exceed size", 10, 10, 11, 1, 0, core.ErrInvalidProbability},
		{"negative successes", 10, 10, 1, -1, 0, core.ErrInvalidProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PooledProbability(tt.nA, tt.nB, tt.xA, tt.xB)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPooledStandardError(t *testing.T) {
	se, err := PooledStandardError(1000, 1000, 100, 120)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.11*0.89*(2.0/1000)), se, 1e-12)

	se, err = PooledStandardError(10, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, se)

	_, err = PooledStandardError(-1, 10, 0, 0)
	assert.ErrorIs(t, err, core.ErrInvalidSampleSize)
}

func TestPooledProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nA := rapid.IntRange(1, 100000).Draw(t, "nA")
		nB := rapid.IntRange(1, 100000).Draw(t, "nB")
		xA := rapid.IntRange(0, nA).Draw(t, "xA")
		xB := rapid.IntRange(0, nB).Draw(t, "xB")

		p, err := PooledProbability(nA, nB, xA, xB)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p < 0 || p > 1 {
			t.Fatalf("pooled probability %g outside [0,1]", p)
		}
		if want := float64(xA+xB) / float64(nA+nB); math.Abs(p-want) > 1e-12 {
			t.Fatalf("pooled probability %g, want %g", p, want)
		}

		ab, err := PooledStandardError(nA, nB, xA, xB)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ba, err := PooledStandardError(nB, nA, xB, xA)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ab < 0 || math.Abs(ab-ba) > 1e-12 {
			t.Fatalf("standard error not symmetric: %g vs %g", ab, ba)
		}
	})
}
