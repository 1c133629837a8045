package sim

import (
	"context"
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
)

// Sweep runs the same scenario under several solvers. Each run gets its own
// grid and metrics and runs on its own goroutine; a single grid is always
// solved sequentially.
type Sweep struct {
	NewGrid    func() *cloth.Grid
	NewMetrics func(cloth.Solver) []metrics.Metric
	Wind       WindSource
}

func (sw Sweep) Run(ctx context.Context, solvers []cloth.Solver, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(solvers))
	errs := make([]error, len(solvers))

	var wg sync.WaitGroup
	for i := range solvers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(solvers[idx])
			s.SetWind(sw.Wind)
			if sw.NewMetrics != nil {
				for _, m := range sw.NewMetrics(solvers[idx]) {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, sw.NewGrid(), cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ResidualSweep measures how far one frame's relaxation gets with each pass
// count: a fresh grid gets gravity, one integration step of dt and k passes,
// and the mean residual of s.Topology is reported per k.
func ResidualSweep(newGrid func() *cloth.Grid, s cloth.Solver, dt float64, counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, k := range counts {
		g := newGrid()
		cloth.ApplyUniformAcceleration(g, s.Gravity)
		if s.Wind != (cloth.Vec2{}) {
			cloth.ApplyWind(g, s.Wind)
		}
		cloth.Integrate(g, dt)
		cloth.Relax(g, s.Topology, k)
		out[i], _ = metrics.Residual(g, s.Topology)
	}
	return out
}
