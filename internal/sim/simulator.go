package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
)

// Simulator drives a grid headlessly with a fixed frame time.
type Simulator struct {
	solver    cloth.Solver
	wind      WindSource
	metrics   []metrics.Metric
	observers []Observer
}

func New(solver cloth.Solver) *Simulator {
	return &Simulator{
		solver:    solver,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

// SetWind makes every frame sample its wind from src. A nil src falls back
// to the solver's own Wind.
func (s *Simulator) SetWind(src WindSource) { s.wind = src }

func (s *Simulator) Solver() cloth.Solver { return s.solver }

// Run steps g for cfg.Frames frames. The context is checked between frames;
// a frame that has started always completes.
func (s *Simulator) Run(ctx context.Context, g *cloth.Grid, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	capacity := 2
	if cfg.SampleEvery > 0 {
		capacity = cfg.Frames/cfg.SampleEvery + 2
	}
	result := &Result{
		Frames:  make([]Frame, 0, capacity),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Frame{Index: 0, Time: t, Positions: g.Positions()})

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(g, t)
		}
		for _, obs := range s.observers {
			obs.OnFrame(g, t)
		}

		s.frameSolver(t).Step(g, cfg.Dt)
		t += cfg.Dt
		result.FramesRun++

		if cfg.ValidateState && !gridValid(g) {
			result.Errors = append(result.Errors, SimError{Frame: result.FramesRun, Time: t, Message: "invalid position (NaN/Inf)"})
			break
		}

		if cfg.SampleEvery > 0 && result.FramesRun%cfg.SampleEvery == 0 {
			result.Frames = append(result.Frames, Frame{Index: result.FramesRun, Time: t, Positions: g.Positions()})
		}
	}

	if result.Last().Index != result.FramesRun {
		result.Frames = append(result.Frames, Frame{Index: result.FramesRun, Time: t, Positions: g.Positions()})
	}

	s.collect(result)
	return result, nil
}

// RunWithCallback steps g until cfg.Frames frames have run or fn returns false.
// fn sees the grid before each frame.
func (s *Simulator) RunWithCallback(ctx context.Context, g *cloth.Grid, cfg Config, fn func(*cloth.Grid, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(g, t) {
			return nil
		}

		s.frameSolver(t).Step(g, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !gridValid(g) {
			return SimError{Frame: i + 1, Time: t, Message: "invalid position (NaN/Inf)"}
		}
	}

	return nil
}

func (s *Simulator) frameSolver(t float64) cloth.Solver {
	if s.wind == nil {
		return s.solver
	}
	return s.solver.WithWind(s.wind.At(t))
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	return nil
}

func gridValid(g *cloth.Grid) bool {
	ps := g.Particles()
	for i := range ps {
		if !ps[i].Position.IsValid() {
			return false
		}
	}
	return true
}
