package experiment

import (
	"encoding/json"
	"errors"
	"testing"

	"abkit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleValidate(t *testing.T) {
	tests := []struct {
		name    string
		sample  Sample
		wantErr error
	}{
		{"valid", Sample{N: 1000, X: 100}, nil},
		{"all successes", Sample{N: 10, X: 10}, nil},
		{"no successes", Sample{N: 10, X: 0}, nil},
		{"zero size", Sample{N: 0, X: 0}, core.ErrInvalidSampleSize},
		{"negative size", Sample{N: -5, X: 0}, core.ErrInvalidSampleSize},
		{"too many successes", Sample{N: 10, X: 11}, core.ErrInvalidProbability},
		{"negative successes", Sample{N: 10, X: -1}, core.ErrInvalidProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sample.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestSampleRate(t *testing.T) {
	s, err := NewSample(1000, 120)
	require.NoError(t, err)
	assert.InDelta(t, 0.12, s.Rate(), 1e-12)
	assert.Equal(t, 0.0, Sample{}.Rate())
}

func TestParseGroupType(t *testing.T) {
	g, err := ParseGroupType("control")
	require.NoError(t, err)
	assert.Equal(t, Control, g)

	g, err = ParseGroupType(" TEST ")
	require.NoError(t, err)
	assert.Equal(t, Test, g)

	_, err = ParseGroupType("variant-b")
	assert.ErrorIs(t, err, core.ErrInvalidGroupType)
}

func TestGroupTypeText(t *testing.T) {
	type wrapper struct {
		Group GroupType `json:"group"`
	}

	data, err := json.Marshal(wrapper{Group: Test})
	require.NoError(t, err)
	assert.JSONEq(t, `{"group":"test"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"group":"control"}`), &w))
	assert.Equal(t, Control, w.Group)

	assert.Error(t, json.Unmarshal([]byte(`{"group":"holdout"}`), &w))
	_, err = json.Marshal(wrapper{Group: GroupType(7)})
	assert.Error(t, err)
	assert.False(t, GroupType(7).Valid())
}

func TestInterval(t *testing.T) {
	i := Interval{Lower: -1, Upper: 3}
	assert.Equal(t, 4.0, i.Width())
	assert.Equal(t, 1.0, i.Midpoint())
	assert.True(t, i.Contains(3))
	assert.False(t, i.Contains(3.5))
}

func TestSplitPeriods(t *testing.T) {
	e, s := SplitPeriods([]Period{{Engagements: 10, Successes: 3}, {Engagements: 8, Successes: 7}})
	assert.Equal(t, []int{10, 8}, e)
	assert.Equal(t, []int{3, 7}, s)
}
