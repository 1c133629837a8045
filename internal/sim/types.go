package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/clothsim/internal/cloth"
)

var (
	// ErrInvalidConfig indicates a non-positive dt or frame count.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrUnstable indicates a particle position became NaN or Inf.
	ErrUnstable = errors.New("sim: simulation unstable (position diverged)")
)

// WindSource yields the wind for the frame starting at time t.
type WindSource interface {
	At(t float64) cloth.Vec2
}

// Observer is notified before every frame is stepped.
type Observer interface {
	OnFrame(g *cloth.Grid, t float64)
}

type Config struct {
	Dt     float64
	Frames int
	// SampleEvery records every n-th frame; 0 keeps only the first and last.
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Frames:        600,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Frame is a recorded snapshot of particle positions after Index frames.
type Frame struct {
	Index     int
	Time      float64
	Positions []cloth.Vec2
}

type Result struct {
	Frames    []Frame
	Metrics   map[string]float64
	FramesRun int
	Errors    []error
}

// Last returns the most recent recorded frame.
func (r *Result) Last() Frame {
	return r.Frames[len(r.Frames)-1]
}

type SimError struct {
	Frame   int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrUnstable }
