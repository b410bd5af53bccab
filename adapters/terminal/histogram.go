// Package terminal renders simulation output for a text console.
package terminal

import (
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
)

const (
	DefaultBins  = 20
	DefaultWidth = 50
)

// PrintHistogram draws a unicode histogram of values over bins buckets,
// with the longest bar width characters wide. Non-finite values are ignored.
func PrintHistogram(w io.Writer, values []float64, bins, width int) error {
	if bins <= 0 {
		return fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}
	if width <= 0 {
		width = DefaultWidth
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		_, err := fmt.Fprintln(w, "no values to plot")
		return err
	}

	hist := histogram.Hist(bins, finite)
	return histogram.Fprintf(w, hist, histogram.Linear(width), func(v float64) string {
		return fmt.Sprintf("%.3f", v)
	})
}
