// Package tune searches controller gain combinations for the one that
// scores best on a tracking metric.
package tune

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Runner builds and runs one tracking session for a parameter combination
// and returns the metric values it produced.
type Runner func(ctx context.Context, params map[string]float64) (map[string]float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination on the grid and returns the parameters
// that minimize metricName. Combinations whose run fails or does not
// report the metric are skipped; if none succeeds, an error is returned.
func (g *GridSearch) Search(ctx context.Context, run Runner, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), run, metricName, &best, &bestParams)

	if bestParams == nil {
		return nil, best, fmt.Errorf("no parameter combination produced metric %q", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	run Runner,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		metrics, err := run(ctx, current)
		if err != nil {
			return
		}

		val, ok := metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, run, metricName, best, bestParams)
	}
}

// Range returns n evenly spaced grid values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
