package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

func fakeResult(name string, v float64) *sim.Result {
	return &sim.Result{Metrics: map[string]float64{name: v}}
}

func TestGridSearchFindsMinimum(t *testing.T) {
	gs, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2, 3}, {-1, 0, 1}})
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	run := func(_ context.Context, p map[string]float64) (*sim.Result, error) {
		calls++
		return fakeResult("cost", (p["a"]-2)*(p["a"]-2)+p["b"]*p["b"]), nil
	}

	params, best, err := gs.Search(context.Background(), run, "cost")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if calls != 9 {
		t.Errorf("expected 9 runs, got %d", calls)
	}
	if params["a"] != 2 || params["b"] != 0 || best != 0 {
		t.Errorf("unexpected best %v = %f", params, best)
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	gs, _ := NewGridSearch([]string{"a"}, [][]float64{{1, 2}})
	run := func(_ context.Context, p map[string]float64) (*sim.Result, error) {
		if p["a"] == 1 {
			return nil, errors.New("boom")
		}
		return fakeResult("cost", 5), nil
	}

	params, best, err := gs.Search(context.Background(), run, "cost")
	if err != nil || params["a"] != 2 || best != 5 {
		t.Errorf("got %v, %f, %v", params, best, err)
	}

	failing := func(context.Context, map[string]float64) (*sim.Result, error) { return nil, errors.New("boom") }
	if _, _, err := gs.Search(context.Background(), failing, "cost"); !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestNewGridSearchValidates(t *testing.T) {
	if _, err := NewGridSearch([]string{"a"}, nil); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]float64{{}}); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestMinPassesBisects(t *testing.T) {
	calls := 0
	run := func(_ context.Context, passes int) (*sim.Result, error) {
		calls++
		return fakeResult("strain", 1/float64(passes)), nil
	}

	passes, v, err := MinPasses(context.Background(), run, "strain", 0.1, 64)
	if err != nil {
		t.Fatalf("min passes failed: %v", err)
	}
	if passes != 10 || v != 0.1 {
		t.Errorf("expected 10 passes at 0.1, got %d at %f", passes, v)
	}
	if calls > 10 {
		t.Errorf("expected a bisection, got %d runs", calls)
	}
}

func TestMinPassesUnreachable(t *testing.T) {
	run := func(_ context.Context, passes int) (*sim.Result, error) {
		return fakeResult("strain", 1), nil
	}
	if _, _, err := MinPasses(context.Background(), run, "strain", 0.5, 8); err == nil {
		t.Error("expected error for unreachable target")
	}
	if _, _, err := MinPasses(context.Background(), run, "missing", 0.5, 8); err == nil {
		t.Error("expected error for missing metric")
	}
	if _, _, err := MinPasses(context.Background(), run, "strain", 0.5, 0); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestMinPassesOnCloth(t *testing.T) {
	run := func(ctx context.Context, passes int) (*sim.Result, error) {
		s := cloth.NewSolver(cloth.Structural, 50)
		s.Iterations = passes
		r := sim.New(s)
		r.AddMetric(metrics.NewStrain(s.Topology))
		g := cloth.NewGrid(6, 6, cloth.Vec2{X: 100, Y: 100}, 50, cloth.PinTopCorners(6))
		return r.Run(ctx, g, sim.Config{Dt: 1.0 / 60, Frames: 30, SampleEvery: 0})
	}

	low, err := run(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	target := low.Metrics["strain"] / 2

	passes, v, err := MinPasses(context.Background(), run, "strain", target, 40)
	if err != nil {
		t.Fatalf("min passes failed: %v", err)
	}
	if passes <= 1 || v > target {
		t.Errorf("expected more than one pass under %f, got %d at %f", target, passes, v)
	}
}
