package cloth

const (
	// Epsilon is the distance below which two particles are treated as
	// coincident and a constraint between them is skipped.
	Epsilon = 1e-4

	DefaultRestLength = 50.0
	DefaultIterations = 10
)

// DefaultGravity is in screen units per second squared, pointing down.
var DefaultGravity = Vec2{0, 980}

// ApplyUniformAcceleration adds accel to the accumulator of every unpinned particle.
func ApplyUniformAcceleration(g *Grid, accel Vec2) {
	for i := range g.particles {
		p := &g.particles[i]
		if p.Pinned {
			continue
		}
		p.Acceleration = p.Acceleration.Add(accel)
	}
}

// Integrate performs one Verlet step with the caller's frame time. Pinned
// particles are skipped entirely, accumulator included.
func Integrate(g *Grid, dt float64) {
	dt2 := dt * dt
	for i := range g.particles {
		p := &g.particles[i]
		if p.Pinned {
			continue
		}

		velocity := p.Position.Sub(p.PreviousPosition)
		next := p.Position.Add(velocity).Add(p.Acceleration.Scale(dt2))

		p.PreviousPosition = p.Position
		p.Position = next
		p.Acceleration = Vec2{}
	}
}

// SolveConstraint moves a and b toward restLength apart in a single
// relaxation step. A free particle facing a pinned one takes the whole
// correction; two free particles split it; two pinned particles are left as is.
// Coincident particles (closer than Epsilon) are skipped.
func SolveConstraint(a, b *Particle, restLength float64) {
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	if dist < Epsilon {
		return
	}

	diff := (dist - restLength) / dist

	switch {
	case !a.Pinned && !b.Pinned:
		correction := d.Scale(0.5 * diff)
		a.Position = a.Position.Add(correction)
		b.Position = b.Position.Sub(correction)
	case !a.Pinned && b.Pinned:
		a.Position = a.Position.Add(d.Scale(diff))
	case a.Pinned && !b.Pinned:
		b.Position = b.Position.Sub(d.Scale(diff))
	}
}

// Relax runs exactly iterations passes over the constraint set of topo.
// Each correction sees the positions left by the previous one.
func Relax(g *Grid, topo Topology, iterations int) {
	for it := 0; it < iterations; it++ {
		for c := range topo.Constraints(g.width, g.height) {
			SolveConstraint(&g.particles[c.A], &g.particles[c.B], c.RestLength)
		}
	}
}

// Solver holds the per-frame parameters of the simulation. It keeps no state
// between frames, so one value may drive any number of grids.
type Solver struct {
	Gravity    Vec2
	Topology   Topology
	Iterations int
	// Wind is applied when non-zero.
	Wind Vec2
}

// NewSolver returns a solver with default gravity and iteration count.
func NewSolver(tiers Tier, restLength float64) Solver {
	return Solver{
		Gravity:    DefaultGravity,
		Topology:   Topology{Tiers: tiers, RestLength: restLength},
		Iterations: DefaultIterations,
	}
}

// Step advances g by one frame of length dt: gravity, wind, integration,
// then Iterations relaxation passes.
func (s Solver) Step(g *Grid, dt float64) {
	ApplyUniformAcceleration(g, s.Gravity)
	if s.Wind != (Vec2{}) {
		ApplyWind(g, s.Wind)
	}
	Integrate(g, dt)
	Relax(g, s.Topology, s.Iterations)
}

// WithWind returns a copy of s blowing wind.
func (s Solver) WithWind(wind Vec2) Solver {
	s.Wind = wind
	return s
}
