package rk_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
)

// Convergence is checked on 2y' + xy = 3x from y(0)=1, whose solution
// y = 3 - 2e^(-x^2/4) stays bounded, so global error behaves like the
// textbook O(h^order) estimate.
var _ = Describe("order of accuracy", func() {
	var (
		eq      ode.Equation
		initial ode.Point
		exact   float64
	)

	BeforeEach(func() {
		eq = ode.NewFirstOrderLinear(2, 1, 3)
		initial = ode.Point{X: 0, Y: 1}
		exact = 3 - 2*math.Exp(-1)
	})

	errAt := func(order rk.Order, h float64) float64 {
		s, err := rk.New(order)
		Expect(err).NotTo(HaveOccurred())
		final, err := s.Solve(eq, initial, h, 2.0)
		Expect(err).NotTo(HaveOccurred())
		return math.Abs(exact - final.Y)
	}

	DescribeTable("halving h shrinks the global error by about 2^order",
		func(order rk.Order, lo, hi float64) {
			ratio := errAt(order, 0.1) / errAt(order, 0.05)
			Expect(ratio).To(BeNumerically(">", lo))
			Expect(ratio).To(BeNumerically("<", hi))
		},
		Entry("rk1", rk.RK1, 1.7, 2.5),
		Entry("rk2", rk.RK2, 3.3, 4.6),
		Entry("rk3", rk.RK3, 5.5, 8.5),
		Entry("rk4", rk.RK4, 12.0, 20.0),
	)

	It("ranks the orders by accuracy at fixed h", func() {
		prev := math.Inf(1)
		for _, order := range rk.Orders {
			e := errAt(order, 0.1)
			Expect(e).To(BeNumerically("<", prev), "order %v", order)
			prev = e
		}
	})

	It("puts rk4 within 1e-7 of the closed form", func() {
		Expect(errAt(rk.RK4, 0.05)).To(BeNumerically("<", 1e-7))
	})
})
