package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/clothsim/internal/sim"
)

// Runner runs one scene with the given parameter values.
type Runner func(ctx context.Context, params map[string]float64) (*sim.Result, error)

var ErrNoResult = errors.New("optim: no candidate produced a result")

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search runs every combination and returns the one with the lowest value of
// metricName. Failed runs are skipped.
func (g *GridSearch) Search(ctx context.Context, run Runner, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), run, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoResult
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
		result, err := run(ctx, current)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, run, metricName, best, bestParams)
	}
}

// PassRunner runs one scene with the given relaxation pass count.
type PassRunner func(ctx context.Context, passes int) (*sim.Result, error)

// MinPasses finds the fewest relaxation passes in [1, limit] whose
// metricName stays at or below target. The metric is assumed to fall as
// passes rise, so the range is bisected.
func MinPasses(ctx context.Context, run PassRunner, metricName string, target float64, limit int) (int, float64, error) {
	if limit < 1 {
		return 0, 0, fmt.Errorf("optim: pass limit must be positive, got %d", limit)
	}

	cache := make(map[int]float64)
	var runErr error
	eval := func(passes int) float64 {
		if v, ok := cache[passes]; ok {
			return v
		}
		result, err := run(ctx, passes)
		if err != nil {
			runErr = err
			return math.Inf(1)
		}
		v, ok := result.Metrics[metricName]
		if !ok {
			runErr = fmt.Errorf("optim: metric %q not reported", metricName)
			return math.Inf(1)
		}
		cache[passes] = v
		return v
	}

	if v := eval(limit); v > target {
		if runErr != nil {
			return 0, 0, runErr
		}
		return 0, v, fmt.Errorf("optim: %s %.6g at %d passes is above target %.6g", metricName, v, limit, target)
	}

	found := sort.Search(limit-1, func(i int) bool {
		return runErr == nil && eval(i+1) <= target
	}) + 1
	if runErr != nil {
		return 0, 0, runErr
	}
	return found, cache[found], nil
}
