package viz

import (
	"github.com/guptarohit/asciigraph"
)

// ErrorChart plots a recorded series as a compact ASCII line chart.
// Returns an empty string when there are too few samples to draw.
func ErrorChart(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}

// Tail returns the last n values, or all of them when fewer exist.
func Tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
