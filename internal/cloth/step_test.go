package cloth_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

// structuralResidual is the mean |dist - rest| over structural links.
func structuralResidual(g *cloth.Grid) float64 {
	topo := cloth.Topology{Tiers: cloth.Structural, RestLength: g.RestLength()}
	ps := g.Particles()
	sum, n := 0.0, 0
	for c := range topo.Constraints(g.Width(), g.Height()) {
		sum += math.Abs(ps[c.B].Position.Sub(ps[c.A].Position).Len() - c.RestLength)
		n++
	}
	return sum / float64(n)
}

var _ = Describe("Solver.Step", func() {
	const dt = 1.0 / 60

	It("never moves pinned particles", func() {
		g := cloth.NewGrid(10, 10, cloth.Vec2{X: 100, Y: 100}, 50, cloth.PinTopCorners(10))
		initial := g.Positions()

		s := cloth.NewSolver(cloth.AllTiers, 50).WithWind(cloth.Vec2{X: 0.02, Y: 0.01})
		s.Iterations = 5

		for frame := 0; frame < 120; frame++ {
			s.Step(g, dt)
			for i, p := range g.Particles() {
				if !p.Pinned {
					continue
				}
				Expect(p.Position).To(Equal(initial[i]))
				Expect(p.PreviousPosition).To(Equal(initial[i]))
			}
		}
	})

	It("lets the free part of the sheet fall", func() {
		g := cloth.NewGrid(5, 5, cloth.Vec2{}, 50, cloth.PinTopCorners(5))
		s := cloth.NewSolver(cloth.Structural, 50)
		for frame := 0; frame < 30; frame++ {
			s.Step(g, dt)
		}
		Expect(g.At(4, 2).Position.Y).To(BeNumerically(">", 200))
		for _, p := range g.Particles() {
			Expect(p.Position.IsValid()).To(BeTrue())
		}
	})

	It("converges toward rest length as passes increase", func() {
		residualAfter := func(iterations int) float64 {
			g := cloth.NewGrid(2, 2, cloth.Vec2{}, 50, func(row, col int) bool { return row == 0 && col == 0 })
			cloth.ApplyUniformAcceleration(g, cloth.DefaultGravity)
			cloth.Integrate(g, dt)
			cloth.Relax(g, cloth.Topology{Tiers: cloth.Structural, RestLength: 50}, iterations)
			return structuralResidual(g)
		}

		r0, r1, r5, r10 := residualAfter(0), residualAfter(1), residualAfter(5), residualAfter(10)
		Expect(r1).To(BeNumerically("<", r0))
		Expect(r5).To(BeNumerically("<=", r1+1e-9))
		Expect(r10).To(BeNumerically("<=", r5+1e-9))
		Expect(r10).To(BeNumerically("<", 1e-3))
	})

	It("gets stiffer with more iterations", func() {
		stretch := func(iterations int) float64 {
			g := cloth.NewGrid(10, 10, cloth.Vec2{}, 20, cloth.PinTopCorners(10))
			s := cloth.NewSolver(cloth.Structural, 20)
			s.Iterations = iterations
			for frame := 0; frame < 60; frame++ {
				s.Step(g, dt)
			}
			return structuralResidual(g)
		}

		Expect(stretch(30)).To(BeNumerically("<", stretch(1)))
	})

	It("skips wind when it is zero", func() {
		a := cloth.NewGrid(4, 4, cloth.Vec2{}, 10, cloth.PinTopRow())
		b := cloth.NewGrid(4, 4, cloth.Vec2{}, 10, cloth.PinTopRow())
		s := cloth.NewSolver(cloth.Structural|cloth.Shear, 10)

		s.Step(a, dt)
		cloth.ApplyUniformAcceleration(b, s.Gravity)
		cloth.Integrate(b, dt)
		cloth.Relax(b, s.Topology, s.Iterations)

		Expect(a.Positions()).To(Equal(b.Positions()))
	})
})
