package cloth_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

func collect(t cloth.Topology, w, h int) []cloth.Constraint {
	var out []cloth.Constraint
	for c := range t.Constraints(w, h) {
		out = append(out, c)
	}
	return out
}

var _ = Describe("Topology", func() {
	DescribeTable("constraint counts",
		func(tiers cloth.Tier, w, h, want int) {
			topo := cloth.Topology{Tiers: tiers, RestLength: 50}
			Expect(collect(topo, w, h)).To(HaveLen(want))
			Expect(topo.Count(w, h)).To(Equal(want))
		},
		Entry("3x3 structural", cloth.Structural, 3, 3, 12),
		Entry("3x3 structural+shear", cloth.Structural|cloth.Shear, 3, 3, 20),
		Entry("3x3 shear only", cloth.Shear, 3, 3, 8),
		Entry("3x3 bend only", cloth.Bend, 3, 3, 6),
		Entry("3x3 all", cloth.AllTiers, 3, 3, 26),
		Entry("10x10 structural", cloth.Structural, 10, 10, 180),
		Entry("1x4 all", cloth.AllTiers, 1, 4, 5),
		Entry("no tiers", cloth.Tier(0), 5, 5, 0),
	)

	It("orders structural, shear, then bend links per cell in row-major order", func() {
		topo := cloth.Topology{Tiers: cloth.AllTiers, RestLength: 10}
		cs := collect(topo, 3, 3)
		diag := 10 * math.Sqrt2

		Expect(cs[:6]).To(Equal([]cloth.Constraint{
			{A: 0, B: 1, RestLength: 10},
			{A: 0, B: 3, RestLength: 10},
			{A: 0, B: 4, RestLength: diag},
			{A: 1, B: 3, RestLength: diag},
			{A: 0, B: 2, RestLength: 20},
			{A: 0, B: 6, RestLength: 20},
		}))
		Expect(cs[6]).To(Equal(cloth.Constraint{A: 1, B: 2, RestLength: 10}))
	})

	It("is deterministic across passes", func() {
		topo := cloth.Topology{Tiers: cloth.AllTiers, RestLength: 50}
		Expect(collect(topo, 6, 4)).To(Equal(collect(topo, 6, 4)))
	})

	It("stops when the consumer breaks early", func() {
		topo := cloth.Topology{Tiers: cloth.Structural, RestLength: 50}
		n := 0
		for range topo.Constraints(10, 10) {
			n++
			if n == 3 {
				break
			}
		}
		Expect(n).To(Equal(3))
	})

	Describe("tier names", func() {
		It("round-trips through String and ParseTiers", func() {
			for _, t := range []cloth.Tier{cloth.Structural, cloth.Structural | cloth.Shear, cloth.AllTiers} {
				parsed, err := cloth.ParseTiers(t.String())
				Expect(err).NotTo(HaveOccurred())
				Expect(parsed).To(Equal(t))
			}
		})

		It("accepts all and tolerates spacing and case", func() {
			t, err := cloth.ParseTiers(" Structural , BEND ")
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(Equal(cloth.Structural | cloth.Bend))

			t, err = cloth.ParseTiers("all")
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(Equal(cloth.AllTiers))
		})

		It("rejects unknown tiers", func() {
			_, err := cloth.ParseTiers("structural,twist")
			Expect(err).To(HaveOccurred())
		})
	})
})
