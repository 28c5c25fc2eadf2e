package airy_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/njchilds90/airy"
	"github.com/njchilds90/airy/gosymbol"
)

// φ(x, y) = x³y + y², written once in Cartesian hyperdual arithmetic and
// once in polar symbols.
func cartesianPhi(x, y hyperdual.Number) hyperdual.Number {
	return hyperdual.Add(hyperdual.Mul(hyperdual.PowReal(x, 3), y), hyperdual.Mul(y, y))
}

func polarPhi(p airy.Polar) gosymbol.Expr {
	x := mul(p.R, gosymbol.CosOf(p.Theta))
	y := mul(p.R, gosymbol.SinOf(p.Theta))
	return add(mul(pow(x, n(3)), y), pow(y, n(2)))
}

var _ = Describe("Numeric cross-checks", func() {
	p := airy.NewPolar()
	x0, y0 := 0.8, 1.3
	r0, th0 := math.Hypot(x0, y0), math.Atan2(y0, x0)
	env := map[string]float64{"r": r0, "theta": th0}

	eval := func(e gosymbol.Expr) float64 {
		v, err := gosymbol.EvalFloat(e, env)
		Expect(err).NotTo(HaveOccurred())
		return v
	}

	It("agrees with hyperdual second derivatives", func() {
		phi := polarPhi(p)

		xx := cartesianPhi(hyperdual.Number{Real: x0, E1mag: 1, E2mag: 1}, hyperdual.Number{Real: y0})
		Expect(eval(p.Dxx(phi))).To(BeNumerically("~", xx.E1E2mag, 1e-9))

		yy := cartesianPhi(hyperdual.Number{Real: x0}, hyperdual.Number{Real: y0, E1mag: 1, E2mag: 1})
		Expect(eval(p.Dyy(phi))).To(BeNumerically("~", yy.E1E2mag, 1e-9))

		xy := cartesianPhi(hyperdual.Number{Real: x0, E1mag: 1}, hyperdual.Number{Real: y0, E2mag: 1})
		Expect(eval(p.Dxy(phi))).To(BeNumerically("~", xy.E1E2mag, 1e-9))
	})

	It("keeps principal stresses under rotation", func() {
		phi := polarPhi(p)
		rect := p.RectangularStress(phi)
		polar, err := p.StressField(phi)
		Expect(err).NotTo(HaveOccurred())

		a1, a2, err := airy.PrincipalStresses(eval(rect.XX), eval(rect.YY), eval(rect.XY))
		Expect(err).NotTo(HaveOccurred())
		b1, b2, err := airy.PrincipalStresses(eval(polar.RR), eval(polar.TT), eval(polar.RT))
		Expect(err).NotTo(HaveOccurred())
		Expect(b1).To(BeNumerically("~", a1, 1e-9))
		Expect(b2).To(BeNumerically("~", a2, 1e-9))
	})

	It("matches the elastic zone of a pressurised cylinder at first yield", func() {
		a, b, sy := 100.0, 200.0, 240.0
		Y := 2 * sy / math.Sqrt(3)
		P0 := Y * (1 - a*a/(b*b)) / 2
		v, err := airy.NewVessel(a, b, P0, 0)
		Expect(err).NotTo(HaveOccurred())
		sol, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())

		for _, rv := range []float64{100, 125, 150, 175, 200} {
			pt, err := sol.At(rv, nil)
			Expect(err).NotTo(HaveOccurred())
			sr := -Y * a * a * (b*b/(rv*rv) - 1) / (2 * b * b)
			st := Y * a * a * (b*b/(rv*rv) + 1) / (2 * b * b)
			Expect(pt.RR).To(BeNumerically("~", sr, 1e-8))
			Expect(pt.TT).To(BeNumerically("~", st, 1e-8))
			Expect(pt.RT).To(BeNumerically("~", 0, 1e-12))
		}
	})

	It("orders principal stresses and computes von Mises", func() {
		s1, s2, err := airy.PrincipalStresses(3, -1, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(s1).To(BeNumerically("~", 3, 1e-12))
		Expect(s2).To(BeNumerically("~", -1, 1e-12))
		Expect(airy.VonMises(s1, s2)).To(BeNumerically("~", math.Sqrt(13), 1e-12))

		_, _, err = airy.PrincipalStresses(math.NaN(), 0, 0)
		Expect(err).To(MatchError(airy.ErrInvalidInput))
	})
})
