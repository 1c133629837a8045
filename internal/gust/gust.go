// Package gust produces time-varying wind for the cloth solver.
package gust

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Source yields the wind vector at simulation time t.
type Source interface {
	At(t float64) cloth.Vec2
}

// Steady blows the same wind forever.
type Steady struct {
	Wind cloth.Vec2
}

func (s Steady) At(float64) cloth.Vec2 { return s.Wind }

// Field modulates a base wind with two perlin noise channels: one scales the
// strength, the other swings the direction.
type Field struct {
	Base      cloth.Vec2
	Amplitude float64 // relative strength swing, and max direction swing in radians
	Frequency float64 // noise samples per second

	strength *perlin.Perlin
	heading  *perlin.Perlin
}

// NewField builds a gust field. Equal seeds give equal gusts.
func NewField(base cloth.Vec2, amplitude, frequency float64, seed int64) *Field {
	return &Field{
		Base:      base,
		Amplitude: amplitude,
		Frequency: frequency,
		strength:  perlin.NewPerlin(2, 2, 3, seed),
		heading:   perlin.NewPerlin(2, 2, 3, seed+1),
	}
}

func (f *Field) At(t float64) cloth.Vec2 {
	x := t * f.Frequency
	scale := 1 + f.Amplitude*clamp(f.strength.Noise1D(x), -1, 1)
	if scale < 0 {
		scale = 0
	}
	angle := f.Amplitude * clamp(f.heading.Noise1D(x+0.5), -1, 1)
	sin, cos := math.Sincos(angle)

	w := f.Base.Scale(scale)
	return cloth.Vec2{X: w.X*cos - w.Y*sin, Y: w.X*sin + w.Y*cos}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
