package airy

import (
	"fmt"

	"github.com/njchilds90/airy/gosymbol"
)

// RectStress holds the rectangular stress components of an Airy function.
type RectStress struct {
	XX, YY, XY gosymbol.Expr
}

// Tensor is [[σxx, σxy], [σxy, σyy]].
func (s RectStress) Tensor() *gosymbol.Matrix {
	return gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{s.XX, s.XY, s.XY, s.YY})
}

// PolarStress holds σrr, σθθ and σrθ.
type PolarStress struct {
	RR, TT, RT gosymbol.Expr
}

// Tensor is [[σrr, σrθ], [σrθ, σθθ]].
func (s PolarStress) Tensor() *gosymbol.Matrix {
	return gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{s.RR, s.RT, s.RT, s.TT})
}

// Components returns the named components in a fixed order.
func (s PolarStress) Components() []NamedExpr {
	return []NamedExpr{{"sigma_rr", s.RR}, {"sigma_thetatheta", s.TT}, {"sigma_rtheta", s.RT}}
}

// NamedExpr pairs an expression with a display name.
type NamedExpr struct {
	Name string
	Expr gosymbol.Expr
}

// Map applies fn to each component.
func (s PolarStress) Map(fn func(gosymbol.Expr) gosymbol.Expr) PolarStress {
	return PolarStress{RR: fn(s.RR), TT: fn(s.TT), RT: fn(s.RT)}
}

// Equivalent compares componentwise.
func (s PolarStress) Equivalent(o PolarStress) bool {
	return gosymbol.Equivalent(s.RR, o.RR) && gosymbol.Equivalent(s.TT, o.TT) && gosymbol.Equivalent(s.RT, o.RT)
}

// Specialize substitutes bindings into every component. Each bound symbol
// must occur in at least one component.
func (s PolarStress) Specialize(bindings map[string]gosymbol.Expr) (PolarStress, error) {
	used := map[string]bool{}
	var out [3]gosymbol.Expr
	for i, c := range []gosymbol.Expr{s.RR, s.TT, s.RT} {
		free := gosymbol.FreeSymbols(c)
		local := map[string]gosymbol.Expr{}
		for name, v := range bindings {
			if _, ok := free[name]; ok {
				local[name] = v
				used[name] = true
			}
		}
		e, err := gosymbol.Subs(c, local)
		if err != nil {
			return PolarStress{}, opErr("specialize", KindInvalidInput, err)
		}
		out[i] = gosymbol.Expand(e)
	}
	for name := range bindings {
		if !used[name] {
			return PolarStress{}, opErr("specialize", KindInvalidInput,
				fmt.Errorf("%q: %w", name, gosymbol.ErrUndefinedSymbol))
		}
	}
	return PolarStress{RR: out[0], TT: out[1], RT: out[2]}, nil
}

// RectangularStress is σxx = ∂²φ/∂y², σyy = ∂²φ/∂x², σxy = −∂²φ/∂x∂y.
func (p Polar) RectangularStress(phi gosymbol.Expr) RectStress {
	return RectStress{
		XX: p.Dyy(phi),
		YY: p.Dxx(phi),
		XY: gosymbol.Expand(gosymbol.MulOf(gosymbol.N(-1), p.Dxy(phi))),
	}
}

// StressField rotates the rectangular stresses of phi into the polar basis,
// Q σ Qᵀ with Q = Rotation2D(θ), and checks that the result is symmetric
// with unchanged trace and determinant.
func (p Polar) StressField(phi gosymbol.Expr) (PolarStress, error) {
	rect := p.RectangularStress(phi)
	sigma := rect.Tensor()
	q := gosymbol.Rotation2D(p.Theta)
	rot := q.MatMul(sigma).MatMul(q.Transpose())
	if skew := rot.MatAdd(rot.Transpose().Scale(gosymbol.N(-1))); !gosymbol.IsZero(skew.Get(0, 1)) {
		return PolarStress{}, opErr("stress_field", KindInvariant,
			fmt.Errorf("rotated tensor is not symmetric: %s: %w", skew.Get(0, 1), ErrInvariantViolated))
	}

	out := PolarStress{
		RR: gosymbol.TrigSimplify(rot.Get(0, 0)),
		TT: gosymbol.TrigSimplify(rot.Get(1, 1)),
		RT: gosymbol.TrigSimplify(rot.Get(0, 1)),
	}
	if err := checkInvariants(sigma, out.Tensor()); err != nil {
		return PolarStress{}, opErr("stress_field", KindInvariant, err)
	}
	return out, nil
}

// checkInvariants compares the similarity invariants of two stress tensors,
// which fixes their eigenvalues.
func checkInvariants(a, b *gosymbol.Matrix) error {
	if !gosymbol.Equivalent(a.Trace(), b.Trace()) {
		return fmt.Errorf("trace %s != %s: %w", a.Trace(), b.Trace(), ErrInvariantViolated)
	}
	if !gosymbol.Equivalent(a.Det(), b.Det()) {
		return fmt.Errorf("determinant changed under rotation: %w", ErrInvariantViolated)
	}
	return nil
}

// PolarStressForm is the closed form for an undefined φ(r, θ):
// σrr = φ_r/r + φ_θθ/r², σθθ = φ_rr, σrθ = φ_θ/r² − φ_rθ/r.
func (p Polar) PolarStressForm(phi *gosymbol.Function) PolarStress {
	r, th := p.R.Name(), p.Theta.Name()
	inv := func(k int64) gosymbol.Expr { return gosymbol.PowOf(p.R, gosymbol.N(-k)) }
	return PolarStress{
		RR: gosymbol.AddOf(gosymbol.MulOf(inv(1), phi.Diff(r)), gosymbol.MulOf(inv(2), phi.Derivative(th, 2))),
		TT: phi.Derivative(r, 2),
		RT: gosymbol.AddOf(gosymbol.MulOf(inv(2), phi.Diff(th)), gosymbol.MulOf(gosymbol.N(-1), inv(1), phi.Diff(r).Diff(th))),
	}
}
