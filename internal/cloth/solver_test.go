package cloth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

func particle(x, y float64, pinned bool) *cloth.Particle {
	pos := cloth.Vec2{X: x, Y: y}
	return &cloth.Particle{Pinned: pinned, Position: pos, PreviousPosition: pos}
}

func dist(a, b *cloth.Particle) float64 {
	return b.Position.Sub(a.Position).Len()
}

var _ = Describe("Solver", func() {
	Describe("ApplyUniformAcceleration", func() {
		It("accumulates on free particles only", func() {
			g := cloth.NewGrid(2, 1, cloth.Vec2{}, 10, func(_, col int) bool { return col == 0 })
			cloth.ApplyUniformAcceleration(g, cloth.Vec2{Y: 980})
			cloth.ApplyUniformAcceleration(g, cloth.Vec2{X: 1})

			Expect(g.At(0, 0).Acceleration).To(Equal(cloth.Vec2{}))
			Expect(g.At(0, 1).Acceleration).To(Equal(cloth.Vec2{X: 1, Y: 980}))
		})
	})

	Describe("Integrate", func() {
		It("leaves a particle at rest where it is without acceleration", func() {
			g := cloth.NewGrid(1, 1, cloth.Vec2{X: 3, Y: 4}, 10, nil)
			cloth.Integrate(g, 1.0/60)
			Expect(g.At(0, 0).Position).To(Equal(cloth.Vec2{X: 3, Y: 4}))
		})

		It("preserves implicit velocity absent forces", func() {
			dt := 0.1
			v := cloth.Vec2{X: 3, Y: -4}
			g := cloth.NewGrid(1, 1, cloth.Vec2{X: 10, Y: 20}, 10, nil)
			p := g.At(0, 0)
			p.PreviousPosition = p.Position.Sub(v.Scale(dt))

			cloth.Integrate(g, dt)

			Expect(p.Position.X).To(BeNumerically("~", 10+v.X*dt, 1e-12))
			Expect(p.Position.Y).To(BeNumerically("~", 20+v.Y*dt, 1e-12))
			Expect(p.PreviousPosition).To(Equal(cloth.Vec2{X: 10, Y: 20}))
		})

		It("adds acceleration*dt² and clears the accumulator", func() {
			dt := 0.5
			g := cloth.NewGrid(1, 1, cloth.Vec2{}, 10, nil)
			p := g.At(0, 0)
			p.Acceleration = cloth.Vec2{X: 4, Y: 8}

			cloth.Integrate(g, dt)

			Expect(p.Position).To(Equal(cloth.Vec2{X: 1, Y: 2}))
			Expect(p.Acceleration).To(Equal(cloth.Vec2{}))
		})

		It("skips pinned particles entirely", func() {
			g := cloth.NewGrid(1, 1, cloth.Vec2{X: 1, Y: 1}, 10, cloth.PinTopCorners(1))
			p := g.At(0, 0)
			p.Acceleration = cloth.Vec2{Y: 5}

			cloth.Integrate(g, 1)

			Expect(p.Position).To(Equal(cloth.Vec2{X: 1, Y: 1}))
			Expect(p.Acceleration).To(Equal(cloth.Vec2{Y: 5}))
		})
	})

	Describe("SolveConstraint", func() {
		DescribeTable("is a no-op when already at rest length",
			func(aPinned, bPinned bool) {
				a := particle(0, 0, aPinned)
				b := particle(30, 40, bPinned)
				for i := 0; i < 25; i++ {
					cloth.SolveConstraint(a, b, 50)
					Expect(a.Position).To(Equal(cloth.Vec2{X: 0, Y: 0}))
					Expect(b.Position).To(Equal(cloth.Vec2{X: 30, Y: 40}))
				}
			},
			Entry("both free", false, false),
			Entry("a pinned", true, false),
			Entry("b pinned", false, true),
			Entry("both pinned", true, true),
		)

		It("moves the free endpoint all the way when the other is pinned", func() {
			a := particle(0, 0, true)
			b := particle(100, 0, false)
			cloth.SolveConstraint(a, b, 50)

			Expect(a.Position).To(Equal(cloth.Vec2{X: 0, Y: 0}))
			Expect(b.Position).To(Equal(cloth.Vec2{X: 50, Y: 0}))
		})

		It("mirrors the correction when b is the pinned endpoint", func() {
			a := particle(0, 0, false)
			b := particle(100, 0, true)
			cloth.SolveConstraint(a, b, 50)

			Expect(a.Position).To(Equal(cloth.Vec2{X: 50, Y: 0}))
			Expect(b.Position).To(Equal(cloth.Vec2{X: 100, Y: 0}))
		})

		It("satisfies the rest length exactly from any direction with one pin", func() {
			a := particle(10, 10, true)
			b := particle(-20, 90, false)
			cloth.SolveConstraint(a, b, 50)
			Expect(dist(a, b)).To(BeNumerically("~", 50, 1e-9))
		})

		It("splits the correction between two free endpoints", func() {
			a := particle(0, 0, false)
			b := particle(100, 0, false)
			cloth.SolveConstraint(a, b, 50)

			Expect(a.Position).To(Equal(cloth.Vec2{X: 25, Y: 0}))
			Expect(b.Position).To(Equal(cloth.Vec2{X: 75, Y: 0}))
		})

		It("pushes compressed free endpoints apart", func() {
			a := particle(0, 0, false)
			b := particle(0, 20, false)
			cloth.SolveConstraint(a, b, 50)

			Expect(a.Position.Y).To(BeNumerically("~", -15, 1e-12))
			Expect(b.Position.Y).To(BeNumerically("~", 35, 1e-12))
		})

		It("never moves two pinned endpoints", func() {
			for _, d := range []float64{0, 1, 49, 51, 500} {
				a := particle(0, 0, true)
				b := particle(d, 0, true)
				cloth.SolveConstraint(a, b, 50)
				Expect(a.Position).To(Equal(cloth.Vec2{}))
				Expect(b.Position).To(Equal(cloth.Vec2{X: d}))
			}
		})

		It("skips coincident particles without producing NaN", func() {
			a := particle(5, 5, false)
			b := particle(5, 5+cloth.Epsilon/2, false)
			cloth.SolveConstraint(a, b, 50)

			Expect(a.Position).To(Equal(cloth.Vec2{X: 5, Y: 5}))
			Expect(b.Position).To(Equal(cloth.Vec2{X: 5, Y: 5 + cloth.Epsilon/2}))
			Expect(a.Position.IsValid()).To(BeTrue())
		})
	})

	Describe("Relax", func() {
		It("runs exactly the requested number of passes", func() {
			stretched := func() *cloth.Grid {
				g := cloth.NewGrid(3, 1, cloth.Vec2{}, 50, cloth.PinTopCorners(3))
				g.At(0, 1).Position = cloth.Vec2{X: 50, Y: 40}
				return g
			}
			topo := cloth.Topology{Tiers: cloth.Structural, RestLength: 50}

			zero := stretched()
			cloth.Relax(zero, topo, 0)
			Expect(zero.At(0, 1).Position).To(Equal(cloth.Vec2{X: 50, Y: 40}))

			one, two := stretched(), stretched()
			cloth.Relax(one, topo, 1)
			cloth.Relax(two, topo, 2)
			Expect(one.At(0, 1).Position).NotTo(Equal(two.At(0, 1).Position))

			manual := stretched()
			cloth.Relax(manual, topo, 1)
			cloth.Relax(manual, topo, 1)
			Expect(manual.At(0, 1).Position).To(Equal(two.At(0, 1).Position))
		})

		It("applies corrections sequentially within a pass", func() {
			g := cloth.NewGrid(3, 1, cloth.Vec2{}, 50, func(_, col int) bool { return col == 0 })
			g.At(0, 1).Position = cloth.Vec2{X: 100}
			g.At(0, 2).Position = cloth.Vec2{X: 200}

			cloth.Relax(g, cloth.Topology{Tiers: cloth.Structural, RestLength: 50}, 1)

			// The first link drags particle 1 to x=50; the second link then
			// sees 150 between 1 and 2 rather than the start-of-pass 100.
			Expect(g.At(0, 1).Position.X).To(BeNumerically("~", 100, 1e-12))
			Expect(g.At(0, 2).Position.X).To(BeNumerically("~", 150, 1e-12))
		})
	})
})
