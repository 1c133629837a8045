package cloth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

var _ = Describe("ApplyWind", func() {
	It("pushes both endpoints of an edge along its normal", func() {
		g := cloth.NewGrid(2, 2, cloth.Vec2{}, 50, nil)
		cloth.ApplyWind(g, cloth.Vec2{Y: 0.5})

		// Only cell (0,0) has edges in range: its horizontal edge faces the
		// wind (F = 0.5 * 50/2 = 12.5), its vertical edge is parallel to it.
		expect := []cloth.Vec2{{X: 0, Y: 12.5}, {X: 50, Y: 12.5}, {X: 0, Y: 50}, {X: 50, Y: 50}}
		for i, p := range g.Particles() {
			Expect(p.Position.X).To(BeNumerically("~", expect[i].X, 1e-9), "particle %d", i)
			Expect(p.Position.Y).To(BeNumerically("~", expect[i].Y, 1e-9), "particle %d", i)
		}
	})

	It("does not move pinned endpoints", func() {
		g := cloth.NewGrid(2, 2, cloth.Vec2{}, 50, cloth.PinTopCorners(2))
		cloth.ApplyWind(g, cloth.Vec2{X: 3, Y: 3})

		Expect(g.At(0, 0).Position).To(Equal(cloth.Vec2{}))
		Expect(g.At(0, 1).Position).To(Equal(cloth.Vec2{X: 50}))
		Expect(g.At(1, 0).Position).NotTo(Equal(cloth.Vec2{Y: 50}))
	})

	It("ignores the last row and last column of edges", func() {
		g := cloth.NewGrid(3, 3, cloth.Vec2{}, 10, nil)
		cloth.ApplyWind(g, cloth.Vec2{X: 1, Y: 1})

		// (2,2) only touches edges on the last row and column.
		Expect(g.At(2, 2).Position).To(Equal(cloth.Vec2{X: 20, Y: 20}))
	})

	It("has no effect with zero wind", func() {
		g := cloth.NewGrid(4, 4, cloth.Vec2{}, 10, nil)
		before := g.Positions()
		cloth.ApplyWind(g, cloth.Vec2{})
		Expect(g.Positions()).To(Equal(before))
	})

	It("skips collapsed edges", func() {
		g := cloth.NewGrid(2, 2, cloth.Vec2{}, 10, nil)
		g.At(0, 1).Position = g.At(0, 0).Position
		g.At(1, 0).Position = g.At(0, 0).Position
		cloth.ApplyWind(g, cloth.Vec2{X: 7, Y: 7})

		for _, p := range g.Particles() {
			Expect(p.Position.IsValid()).To(BeTrue())
		}
		Expect(g.At(0, 0).Position).To(Equal(cloth.Vec2{}))
	})
})
