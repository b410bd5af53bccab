package terminal

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHistogram(t *testing.T) {
	values := []float64{0.01, 0.02, 0.2, 0.4, 0.41, 0.6, 0.8, 0.99, math.NaN()}

	var buf bytes.Buffer
	require.NoError(t, PrintHistogram(&buf, values, 5, 10))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "0.010-"))
	assert.Contains(t, lines[4], "0.990")
}

func TestPrintHistogramEdgeCases(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PrintHistogram(&buf, []float64{0.5}, 0, 10))

	buf.Reset()
	require.NoError(t, PrintHistogram(&buf, nil, 10, 10))
	assert.Equal(t, "no values to plot\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintHistogram(&buf, []float64{0.3, 0.3, 0.3}, 10, 0))
	assert.Contains(t, buf.String(), "100%")
}
