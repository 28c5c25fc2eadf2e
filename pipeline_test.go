package airy_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/njchilds90/airy"
	"github.com/njchilds90/airy/gosymbol"
)

var (
	n     = gosymbol.N
	add   = gosymbol.AddOf
	mul   = gosymbol.MulOf
	pow   = gosymbol.PowOf
	equiv = gosymbol.Equivalent
)

func neg(e gosymbol.Expr) gosymbol.Expr { return mul(n(-1), e) }

var _ = Describe("Polar operators", func() {
	p := airy.NewPolar()
	r, th := p.R, p.Theta
	x := mul(r, gosymbol.CosOf(th))
	y := mul(r, gosymbol.SinOf(th))

	It("differentiates the coordinate functions", func() {
		Expect(equiv(p.Dx(x), n(1))).To(BeTrue())
		Expect(equiv(p.Dy(y), n(1))).To(BeTrue())
		Expect(equiv(p.Dx(y), n(0))).To(BeTrue())
		Expect(equiv(p.Dy(x), n(0))).To(BeTrue())
	})

	It("builds mixed second derivatives that commute", func() {
		phi := p.Phi()
		Expect(equiv(p.Dxy(phi), airy.Compose(p.Dy, p.Dx)(phi))).To(BeTrue())
	})

	It("composes right to left", func() {
		double := func(e gosymbol.Expr) gosymbol.Expr { return mul(n(2), e) }
		inc := func(e gosymbol.Expr) gosymbol.Expr { return add(e, n(1)) }
		Expect(airy.Compose(double, inc)(n(3)).String()).To(Equal("8"))
	})
})

var _ = Describe("Laplacian and biharmonic", func() {
	p := airy.NewPolar()
	phi := p.Phi()

	It("reduces the Laplacian to f_rr + f_r/r + f_θθ/r²", func() {
		Expect(equiv(p.Laplacian(phi), p.LaplacianForm(phi))).To(BeTrue())
	})

	It("matches the closed biharmonic form", func() {
		Expect(equiv(p.Biharmonic(phi), p.BiharmonicForm(phi))).To(BeTrue())
	})

	It("leaves more terms in the unsimplified Laplacian", func() {
		raw := p.RawLaplacian(phi)
		Expect(gosymbol.Terms(raw)).To(BeNumerically(">", gosymbol.Terms(p.Laplacian(phi))))
		Expect(equiv(raw, p.LaplacianForm(phi))).To(BeTrue())
	})

	It("gives ∇²r² = 4", func() {
		Expect(p.Laplacian(pow(p.R, n(2))).String()).To(Equal("4"))
	})
})

var _ = Describe("Stress field", func() {
	p := airy.NewPolar()
	phi := p.Phi()

	It("rotates the rectangular stresses into the polar closed form", func() {
		s, err := p.StressField(phi)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Equivalent(p.PolarStressForm(phi))).To(BeTrue())
	})

	It("preserves the stress invariants", func() {
		rect := p.RectangularStress(phi)
		s, err := p.StressField(phi)
		Expect(err).NotTo(HaveOccurred())
		Expect(equiv(rect.Tensor().Trace(), s.Tensor().Trace())).To(BeTrue())
		Expect(equiv(rect.Tensor().Det(), s.Tensor().Det())).To(BeTrue())
	})

	It("gives a hydrostatic state for φ = r²", func() {
		s, err := p.StressField(pow(p.R, n(2)))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.RR.String()).To(Equal("2"))
		Expect(s.TT.String()).To(Equal("2"))
		Expect(s.RT.String()).To(Equal("0"))
	})
})

var _ = Describe("Radial biharmonic equation", func() {
	p := airy.NewPolar()

	It("has the double roots 0 and 2", func() {
		sol, err := p.SolveRadialBiharmonic()
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Order).To(Equal(4))
		Expect(sol.Roots).To(HaveLen(2))
		Expect(sol.Roots[0].Value.String()).To(Equal("0"))
		Expect(sol.Roots[0].Multiplicity).To(Equal(2))
		Expect(sol.Roots[1].Value.String()).To(Equal("2"))
		Expect(sol.Roots[1].Multiplicity).To(Equal(2))
	})

	It("spans 1, ln r, r² and r² ln r with four constants", func() {
		sol, err := p.SolveRadialBiharmonic()
		Expect(err).NotTo(HaveOccurred())
		r, ln := p.R, gosymbol.LnOf(p.R)
		r2 := pow(r, n(2))
		c := func(i string) gosymbol.Expr { return gosymbol.S("C" + i) }
		want := add(c("1"), mul(c("2"), ln), mul(c("3"), r2), mul(c("4"), r2, ln))
		Expect(sol.Constants).To(HaveLen(4))
		Expect(equiv(sol.General, want)).To(BeTrue())
	})

	It("satisfies ∇⁴φ = 0", func() {
		sol, err := p.SolveRadialBiharmonic()
		Expect(err).NotTo(HaveOccurred())
		Expect(gosymbol.IsZero(p.Biharmonic(sol.General))).To(BeTrue())
	})
})

var _ = Describe("Axisymmetric specialisation", func() {
	p := airy.NewPolar()
	r := p.R
	A, B, C := airy.ConstA, airy.ConstB, airy.ConstC
	ln := gosymbol.LnOf(r)
	invR2 := pow(r, n(-2))

	It("derives the axisymmetric stresses", func() {
		s, err := p.AxisymmetricStress()
		Expect(err).NotTo(HaveOccurred())
		Expect(equiv(s.RR, add(mul(A, invR2), mul(n(2), B, ln), B, mul(n(2), C)))).To(BeTrue())
		Expect(equiv(s.TT, add(neg(mul(A, invR2)), mul(n(2), B, ln), mul(n(3), B), mul(n(2), C)))).To(BeTrue())
		Expect(gosymbol.IsZero(s.RT)).To(BeTrue())
	})

	It("drops A and B for a solid disk", func() {
		s, err := p.AxisymmetricStress()
		Expect(err).NotTo(HaveOccurred())
		solid, err := airy.Solid.Apply(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(equiv(solid.RR, mul(n(2), C))).To(BeTrue())
		Expect(equiv(solid.TT, mul(n(2), C))).To(BeTrue())
	})

	It("keeps A/r² for a hollow cylinder", func() {
		s, err := p.AxisymmetricStress()
		Expect(err).NotTo(HaveOccurred())
		hollow, err := airy.Hollow.Apply(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(equiv(hollow.RR, add(mul(A, invR2), mul(n(2), C)))).To(BeTrue())
		Expect(equiv(hollow.TT, add(neg(mul(A, invR2)), mul(n(2), C)))).To(BeTrue())
	})

	It("rejects bindings for symbols that do not occur", func() {
		s, err := p.AxisymmetricStress()
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Specialize(map[string]gosymbol.Expr{"D": n(0)})
		Expect(errors.Is(err, gosymbol.ErrUndefinedSymbol)).To(BeTrue())
		Expect(airy.IsKind(err, airy.KindInvalidInput)).To(BeTrue())
	})
})

var _ = Describe("Pressure vessel", func() {
	p := airy.NewPolar()

	It("solves the symbolic Lamé constants", func() {
		v := airy.SymbolicVessel()
		sol, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())
		a2, b2 := pow(v.Inner, n(2)), pow(v.Outer, n(2))
		d := add(a2, neg(b2))
		wantA := mul(a2, b2, add(v.PIn, neg(v.POut)), pow(d, n(-1)))
		wantC := mul(add(neg(mul(a2, v.PIn)), mul(b2, v.POut)), pow(mul(n(2), d), n(-1)))
		Expect(equiv(sol.A, wantA)).To(BeTrue())
		Expect(equiv(sol.C, wantC)).To(BeTrue())
	})

	It("meets both boundary conditions", func() {
		v := airy.SymbolicVessel()
		sol, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())
		inner, err := sol.ExactAt(v.Inner)
		Expect(err).NotTo(HaveOccurred())
		outer, err := sol.ExactAt(v.Outer)
		Expect(err).NotTo(HaveOccurred())
		Expect(equiv(inner.RR, neg(v.PIn))).To(BeTrue())
		Expect(equiv(outer.RR, neg(v.POut))).To(BeTrue())
	})

	It("reports a zero wall thickness reached by substitution", func() {
		v := airy.SymbolicVessel()
		sol, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())
		equal := map[string]gosymbol.Expr{"a": n(1), "b": n(1), "p_in": n(5), "p_out": n(5)}

		_, err = gosymbol.Subs(sol.A, equal)
		Expect(err).To(MatchError(gosymbol.ErrDivisionByZero))
		_, err = gosymbol.Subs(sol.C, equal)
		Expect(err).To(MatchError(gosymbol.ErrDivisionByZero))
		_, err = sol.Stress.Specialize(equal)
		Expect(err).To(MatchError(gosymbol.ErrDivisionByZero))
	})

	It("solves a numeric vessel exactly", func() {
		v, err := airy.NewVessel(1, 2, 100, 0)
		Expect(err).NotTo(HaveOccurred())
		sol, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.A.String()).To(Equal("-400/3"))
		Expect(sol.C.String()).To(Equal("50/3"))
		at1, err := sol.ExactAt(n(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(at1.RR.String()).To(Equal("-100"))
		at2, err := sol.ExactAt(n(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(at2.RR.String()).To(Equal("0"))
		Expect(at2.TT.String()).To(Equal("200/3"))

		_, err = sol.ExactAt(n(0))
		Expect(err).To(MatchError(airy.ErrInvalidInput))
		_, err = sol.ExactAt(n(-1))
		Expect(err).To(MatchError(airy.ErrInvalidInput))

		_, err = sol.At(1.5, map[string]float64{"zzz": 1})
		Expect(err).To(MatchError(gosymbol.ErrUndefinedSymbol))

		pt, err := sol.At(2, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(pt.RR).To(BeNumerically("~", 0, 1e-9))
		Expect(pt.TT).To(BeNumerically("~", 200.0/3, 1e-9))
	})

	It("samples a radial profile", func() {
		v, err := airy.NewVessel(1, 2, 100, 0)
		Expect(err).NotTo(HaveOccurred())
		sol, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())
		pts, err := sol.Sample(11)
		Expect(err).NotTo(HaveOccurred())
		Expect(pts).To(HaveLen(11))
		Expect(pts[0].R).To(BeNumerically("~", 1, 1e-12))
		Expect(pts[10].R).To(BeNumerically("~", 2, 1e-12))
		Expect(pts[0].RR).To(BeNumerically("~", -100, 1e-9))
		for _, pt := range pts {
			Expect(pt.Sigma1).To(BeNumerically(">=", pt.Sigma2))
			Expect(pt.VonMises).To(BeNumerically(">=", 0))
		}

		_, err = sol.Sample(airy.MaxSamples + 1)
		Expect(err).To(MatchError(airy.ErrInvalidInput))
	})

	It("rejects degenerate geometry", func() {
		a := gosymbol.S("a")
		_, err := p.SolveVessel(airy.Vessel{Inner: a, Outer: a, PIn: n(1), POut: n(0)})
		Expect(errors.Is(err, airy.ErrDegenerateGeometry)).To(BeTrue())
		Expect(errors.Is(err, airy.ErrInvalidInput)).To(BeTrue())

		_, err = airy.NewVessel(1, 1, 10, 0)
		Expect(errors.Is(err, airy.ErrDegenerateGeometry)).To(BeTrue())
		_, err = airy.NewVessel(0, 1, 10, 0)
		Expect(errors.Is(err, airy.ErrDegenerateGeometry)).To(BeTrue())
	})

	It("rejects an inverted vessel as invalid input", func() {
		_, err := airy.NewVessel(2, 1, 10, 0)
		Expect(errors.Is(err, airy.ErrInvalidInput)).To(BeTrue())
		Expect(errors.Is(err, airy.ErrDegenerateGeometry)).To(BeFalse())
	})

	It("refuses to sample a symbolic vessel", func() {
		sol, err := p.SolveVessel(airy.SymbolicVessel())
		Expect(err).NotTo(HaveOccurred())
		_, err = sol.Sample(5)
		Expect(errors.Is(err, airy.ErrInvalidInput)).To(BeTrue())
	})

	It("evaluates a symbolic vessel with bound parameters", func() {
		sym, err := p.SolveVessel(airy.SymbolicVessel())
		Expect(err).NotTo(HaveOccurred())
		v, err := airy.NewVessel(1, 2, 100, 0)
		Expect(err).NotTo(HaveOccurred())
		num, err := p.SolveVessel(v)
		Expect(err).NotTo(HaveOccurred())

		env := map[string]float64{"a": 1, "b": 2, "p_in": 100, "p_out": 0}
		got, err := sym.At(1.5, env)
		Expect(err).NotTo(HaveOccurred())
		want, err := num.At(1.5, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.RR).To(BeNumerically("~", want.RR, 1e-9))
		Expect(got.TT).To(BeNumerically("~", want.TT, 1e-9))

		_, err = sym.At(1.5, map[string]float64{"a": 1, "b": 2, "p_in": 100, "p_out": 0, "r": 3})
		Expect(err).To(MatchError(gosymbol.ErrUndefinedSymbol))
	})
})

var _ = Describe("Derive", func() {
	It("records every step of the sequence", func() {
		d, err := airy.Derive(context.Background(), airy.Options{})
		Expect(err).NotTo(HaveOccurred())
		for _, name := range []string{"dx", "laplacian", "biharmonic", "sigma_rr", "radial_general", "vessel_A"} {
			st, ok := d.Step(name)
			Expect(ok).To(BeTrue(), name)
			Expect(st.LaTeX).NotTo(BeEmpty())
		}
		Expect(d.ODE).NotTo(BeNil())
		Expect(d.Vessel).NotTo(BeNil())
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := airy.Derive(ctx, airy.Options{})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})
