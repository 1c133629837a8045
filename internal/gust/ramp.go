package gust

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ramp eases a wind strength factor between 0 and 1 so toggling wind does
// not kick the sheet.
type Ramp struct {
	duration float32
	value    float32
	on       bool
	tween    *gween.Tween
}

// NewRamp returns a ramp at rest in the off state. A non-positive duration
// switches instantly.
func NewRamp(seconds float64) *Ramp {
	return &Ramp{duration: float32(seconds)}
}

func (r *Ramp) On()  { r.to(true) }
func (r *Ramp) Off() { r.to(false) }

// Toggle flips the target state and reports the new one.
func (r *Ramp) Toggle() bool {
	r.to(!r.on)
	return r.on
}

func (r *Ramp) IsOn() bool { return r.on }

func (r *Ramp) to(on bool) {
	r.on = on
	target := float32(0)
	if on {
		target = 1
	}
	if r.duration <= 0 {
		r.value = target
		r.tween = nil
		return
	}
	r.tween = gween.New(r.value, target, r.duration, ease.InOutQuad)
}

// Update advances the ramp by dt seconds and returns the current factor.
func (r *Ramp) Update(dt float64) float64 {
	if r.tween != nil {
		v, done := r.tween.Update(float32(dt))
		r.value = v
		if done {
			r.tween = nil
		}
	}
	return float64(r.value)
}

// Value returns the factor without advancing.
func (r *Ramp) Value() float64 { return float64(r.value) }
