package analysis

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

// Sway summarises how one particle moved over a run.
type Sway struct {
	Particle   int
	FrequencyX float64
	FrequencyY float64
	SettleX    float64
	SettleY    float64
	RangeX     float64
	RangeY     float64
}

// ParticleSway analyses particle i across frames sampled every dt seconds.
// tol is the settling band in world units.
func ParticleSway(frames []sim.Frame, i int, dt, tol float64) Sway {
	xs := make([]float64, 0, len(frames))
	ys := make([]float64, 0, len(frames))
	for _, f := range frames {
		if i < 0 || i >= len(f.Positions) {
			continue
		}
		xs = append(xs, f.Positions[i].X)
		ys = append(ys, f.Positions[i].Y)
	}

	return Sway{
		Particle:   i,
		FrequencyX: DominantFrequency(xs, dt),
		FrequencyY: DominantFrequency(ys, dt),
		SettleX:    SettlingTime(xs, dt, tol),
		SettleY:    SettlingTime(ys, dt, tol),
		RangeX:     span(xs),
		RangeY:     span(ys),
	}
}

// SampleInterval is the time between consecutive recorded frames.
func SampleInterval(frames []sim.Frame) float64 {
	if len(frames) < 2 {
		return 0
	}
	return frames[1].Time - frames[0].Time
}

// Centroid returns the mean position of a frame.
func Centroid(positions []cloth.Vec2) cloth.Vec2 {
	var c cloth.Vec2
	if len(positions) == 0 {
		return c
	}
	for _, p := range positions {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(positions)))
}

func span(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return hi - lo
}
