package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Metric observes a grid once per frame and reduces it to one number.
type Metric interface {
	Name() string
	Observe(g *cloth.Grid, t float64)
	Value() float64
	Reset()
}

// Residual returns the mean and max |dist - rest| over the constraints of topo.
func Residual(g *cloth.Grid, topo cloth.Topology) (mean, peak float64) {
	ps := g.Particles()
	n := 0
	for c := range topo.Constraints(g.Width(), g.Height()) {
		r := math.Abs(ps[c.B].Position.Sub(ps[c.A].Position).Len() - c.RestLength)
		mean += r
		if r > peak {
			peak = r
		}
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return mean / float64(n), peak
}

// Defaults returns the standard metric set for topo.
func Defaults(topo cloth.Topology) []Metric {
	return []Metric{
		NewStrain(topo),
		NewPeakStrain(topo),
		NewKinetic(),
		NewPinDrift(),
	}
}

// Strain averages the mean constraint residual over observed frames.
type Strain struct {
	topo    cloth.Topology
	total   float64
	samples int
}

func NewStrain(topo cloth.Topology) *Strain { return &Strain{topo: topo} }

func (s *Strain) Name() string { return "strain" }

func (s *Strain) Observe(g *cloth.Grid, _ float64) {
	mean, _ := Residual(g, s.topo)
	s.total += mean
	s.samples++
}

func (s *Strain) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Strain) Reset() {
	s.total = 0
	s.samples = 0
}

// PeakStrain is the largest single constraint residual seen.
type PeakStrain struct {
	topo cloth.Topology
	peak float64
}

func NewPeakStrain(topo cloth.Topology) *PeakStrain { return &PeakStrain{topo: topo} }

func (p *PeakStrain) Name() string { return "peak_strain" }

func (p *PeakStrain) Observe(g *cloth.Grid, _ float64) {
	_, m := Residual(g, p.topo)
	p.peak = math.Max(p.peak, m)
}

func (p *PeakStrain) Value() float64 { return p.peak }
func (p *PeakStrain) Reset()         { p.peak = 0 }

// Kinetic averages ½|Δp|² summed over particles, in units² per frame².
// Mass is uniform so it is left out.
type Kinetic struct {
	total   float64
	samples int
}

func NewKinetic() *Kinetic { return &Kinetic{} }

func (k *Kinetic) Name() string { return "kinetic" }

func (k *Kinetic) Observe(g *cloth.Grid, _ float64) {
	k.total += KineticEnergy(g)
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.total = 0
	k.samples = 0
}

// KineticEnergy is the instantaneous ½|Δp|² sum for g.
func KineticEnergy(g *cloth.Grid) float64 {
	e := 0.0
	ps := g.Particles()
	for i := range ps {
		v := ps[i].Velocity()
		e += 0.5 * v.Dot(v)
	}
	return e
}

// PinDrift tracks how far any pinned particle has moved from where it was
// first observed. A correct solver keeps it at zero.
type PinDrift struct {
	anchors map[int]cloth.Vec2
	drift   float64
}

func NewPinDrift() *PinDrift { return &PinDrift{} }

func (d *PinDrift) Name() string { return "pin_drift" }

func (d *PinDrift) Observe(g *cloth.Grid, _ float64) {
	ps := g.Particles()
	if d.anchors == nil {
		d.anchors = make(map[int]cloth.Vec2)
		for i := range ps {
			if ps[i].Pinned {
				d.anchors[i] = ps[i].Position
			}
		}
	}
	for i, anchor := range d.anchors {
		d.drift = math.Max(d.drift, ps[i].Position.Sub(anchor).Len())
		d.drift = math.Max(d.drift, ps[i].PreviousPosition.Sub(anchor).Len())
	}
}

func (d *PinDrift) Value() float64 { return d.drift }

func (d *PinDrift) Reset() {
	d.anchors = nil
	d.drift = 0
}
