package experiment

import (
	"fmt"
	"strings"

	"abkit/domain/core"
)

// ============================================================================
// SAMPLES
// ============================================================================

// Sample is one arm (control or test) of a two-arm experiment.
// INVARIANTS:
// - N > 0
// - 0 <= X <= N
type Sample struct {
	N int `json:"n" yaml:"n"` // Number of trials
	X int `json:"x" yaml:"x"` // Number of successes
}

// NewSample builds a validated Sample
func NewSample(n, x int) (Sample, error) {
	s := Sample{N: n, X: x}
	if err := s.Validate(); err != nil {
		return Sample{}, err
	}
	return s, nil
}

// Validate checks the sample invariants
func (s Sample) Validate() error {
	if s.N <= 0 {
		return core.NewSampleSizeError("N", s.N)
	}
	if s.X < 0 || s.X > s.N {
		return fmt.Errorf("%w: successes %d outside [0, %d]", core.ErrInvalidProbability, s.X, s.N)
	}
	return nil
}

// Rate returns the observed success rate X/N
func (s Sample) Rate() float64 {
	if s.N == 0 {
		return 0
	}
	return float64(s.X) / float64(s.N)
}

// ============================================================================
// GROUPS
// ============================================================================

// GroupType discriminates the two arms of an experiment
type GroupType int

const (
	Control GroupType = iota
	Test
)

// String returns the canonical lower-case group name
func (g GroupType) String() string {
	switch g {
	case Control:
		return "control"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("GroupType(%d)", int(g))
	}
}

// Valid reports whether g is one of the known groups
func (g GroupType) Valid() bool {
	return g == Control || g == Test
}

// ParseGroupType parses "control" or "test" (case-insensitive)
func ParseGroupType(s string) (GroupType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "control":
		return Control, nil
	case "test":
		return Test, nil
	default:
		return 0, core.NewGroupTypeError(s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (g GroupType) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, core.NewGroupTypeError(g.String())
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *GroupType) UnmarshalText(text []byte) error {
	parsed, err := ParseGroupType(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ============================================================================
// INTERVALS & PERIODS
// ============================================================================

// Interval is a closed interval [Lower, Upper]
type Interval struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Width returns Upper - Lower
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Midpoint returns the centre of the interval
func (i Interval) Midpoint() float64 {
	return (i.Lower + i.Upper) / 2
}

// Contains reports whether x lies inside the interval
func (i Interval) Contains(x float64) bool {
	return x >= i.Lower && x <= i.Upper
}

// Period holds the engagement and success counts observed in one time bucket
type Period struct {
	Engagements int `json:"engagements" yaml:"engagements"`
	Successes   int `json:"successes" yaml:"successes"`
}

// SplitPeriods separates periods into parallel engagement and success slices
func SplitPeriods(periods []Period) (engagements, successes []int) {
	engagements = make([]int, len(periods))
	successes = make([]int, len(periods))
	for i, p := range periods {
		engagements[i] = p.Engagements
		successes[i] = p.Successes
	}
	return engagements, successes
}
