package airy

import (
	"github.com/njchilds90/airy/gosymbol"
)

// Integration constants of the axisymmetric potential.
var (
	ConstA = gosymbol.S("A")
	ConstB = gosymbol.S("B")
	ConstC = gosymbol.S("C")
	ConstD = gosymbol.S("D")
)

// RadialPhi is the undefined radially symmetric stress function φ(r).
func (p Polar) RadialPhi() *gosymbol.Function {
	return gosymbol.Fn("phi", p.R.Name())
}

// SolveRadialBiharmonic applies the biharmonic operator to φ(r) and solves
// the resulting fourth-order Euler equation ∇⁴φ = 0.
func (p Polar) SolveRadialBiharmonic() (*gosymbol.ODESolution, error) {
	phi := p.RadialPhi()
	sol, err := gosymbol.DSolveEuler(p.Biharmonic(phi), phi)
	if err != nil {
		return nil, opErr("radial_biharmonic", KindSolver, err)
	}
	return sol, nil
}

// AxisymmetricPotential is A ln r + B r² ln r + C r² + D.
func (p Polar) AxisymmetricPotential() gosymbol.Expr {
	r2 := gosymbol.PowOf(p.R, gosymbol.N(2))
	ln := gosymbol.LnOf(p.R)
	return gosymbol.AddOf(
		gosymbol.MulOf(ConstA, ln),
		gosymbol.MulOf(ConstB, r2, ln),
		gosymbol.MulOf(ConstC, r2),
		ConstD,
	)
}

// AxisymmetricStress substitutes the axisymmetric potential into the polar
// stress components of φ(r, θ):
//
//	σrr = A/r² + 2B ln r + B + 2C
//	σθθ = −A/r² + 2B ln r + 3B + 2C
//	σrθ = 0
func (p Polar) AxisymmetricStress() (PolarStress, error) {
	general, err := p.StressField(p.Phi())
	if err != nil {
		return PolarStress{}, err
	}
	return p.stressOf(general, p.AxisymmetricPotential()), nil
}

func (p Polar) stressOf(general PolarStress, potential gosymbol.Expr) PolarStress {
	return general.Map(func(e gosymbol.Expr) gosymbol.Expr {
		return gosymbol.Expand(gosymbol.Replace(e, "phi", potential))
	})
}

// Policy selects which axisymmetric terms are kept.
type Policy int

const (
	// Solid drops A and B: both are unbounded at r = 0.
	Solid Policy = iota
	// Hollow drops B and keeps A/r². The r² ln r term is excluded as a
	// modelling choice, not a consequence of the geometry.
	Hollow
)

func (pol Policy) String() string {
	switch pol {
	case Solid:
		return "solid"
	case Hollow:
		return "hollow"
	}
	return "unknown"
}

// Bindings are the constants the policy sets to zero.
func (pol Policy) Bindings() map[string]gosymbol.Expr {
	switch pol {
	case Solid:
		return map[string]gosymbol.Expr{ConstA.Name(): gosymbol.N(0), ConstB.Name(): gosymbol.N(0)}
	case Hollow:
		return map[string]gosymbol.Expr{ConstB.Name(): gosymbol.N(0)}
	}
	return nil
}

// Apply specialises an axisymmetric stress state.
func (pol Policy) Apply(s PolarStress) (PolarStress, error) {
	return s.Specialize(pol.Bindings())
}
