package cloth_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

var _ = Describe("Grid", func() {
	var g *cloth.Grid

	BeforeEach(func() {
		g = cloth.NewGrid(4, 3, cloth.Vec2{X: 100, Y: 100}, 50, cloth.PinTopCorners(4))
	})

	It("allocates width*height particles", func() {
		Expect(g.Len()).To(Equal(12))
		Expect(g.Particles()).To(HaveLen(12))
		Expect(g.Width()).To(Equal(4))
		Expect(g.Height()).To(Equal(3))
	})

	It("lays particles out rest length apart from the origin, at rest", func() {
		for row := 0; row < 3; row++ {
			for col := 0; col < 4; col++ {
				p := g.At(row, col)
				want := cloth.Vec2{X: 100 + float64(col)*50, Y: 100 + float64(row)*50}
				Expect(p.Position).To(Equal(want))
				Expect(p.PreviousPosition).To(Equal(want))
				Expect(p.Acceleration).To(Equal(cloth.Vec2{}))
			}
		}
	})

	It("pins only the two top corners with the reference policy", func() {
		var pinned []int
		for i, p := range g.Particles() {
			if p.Pinned {
				pinned = append(pinned, i)
			}
		}
		Expect(pinned).To(Equal([]int{0, 3}))
	})

	It("evaluates the pin predicate once per particle", func() {
		calls := map[[2]int]int{}
		cloth.NewGrid(3, 2, cloth.Vec2{}, 10, func(row, col int) bool {
			calls[[2]int{row, col}]++
			return false
		})
		Expect(calls).To(HaveLen(6))
		for _, n := range calls {
			Expect(n).To(Equal(1))
		}
	})

	It("treats a nil predicate as no pins", func() {
		free := cloth.NewGrid(2, 2, cloth.Vec2{}, 10, nil)
		for _, p := range free.Particles() {
			Expect(p.Pinned).To(BeFalse())
		}
	})

	It("uses row-major linear indices", func() {
		Expect(g.Index(0, 0)).To(Equal(0))
		Expect(g.Index(1, 0)).To(Equal(4))
		Expect(g.Index(2, 3)).To(Equal(11))
	})

	It("hands out live particles, not copies", func() {
		g.At(1, 1).Position = cloth.Vec2{X: -1, Y: -1}
		Expect(g.Particles()[5].Position).To(Equal(cloth.Vec2{X: -1, Y: -1}))
	})

	DescribeTable("out-of-range access panics instead of clamping",
		func(row, col int) {
			Expect(func() { g.At(row, col) }).To(PanicWith(BeAssignableToTypeOf(&cloth.IndexError{})))

			_, err := g.Lookup(row, col)
			Expect(err).To(MatchError(cloth.ErrIndexOutOfRange))

			var ie *cloth.IndexError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Row).To(Equal(row))
			Expect(ie.Col).To(Equal(col))
		},
		Entry("negative row", -1, 0),
		Entry("row == height", 3, 0),
		Entry("negative col", 0, -1),
		Entry("col == width", 0, 4),
	)

	It("resolves pin policies by name", func() {
		for _, name := range cloth.PinPolicies() {
			fn, ok := cloth.PinPolicy(name, 4)
			Expect(ok).To(BeTrue(), name)
			Expect(fn).NotTo(BeNil())
		}
		_, ok := cloth.PinPolicy("diagonal", 4)
		Expect(ok).To(BeFalse())

		top, _ := cloth.PinPolicy("top_row", 4)
		Expect(top(0, 2)).To(BeTrue())
		Expect(top(1, 2)).To(BeFalse())
	})

	It("returns detached snapshots from Positions", func() {
		snap := g.Positions()
		snap[0] = cloth.Vec2{X: 9, Y: 9}
		Expect(g.At(0, 0).Position).To(Equal(cloth.Vec2{X: 100, Y: 100}))
	})
})
