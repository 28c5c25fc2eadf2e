package airy

import "github.com/njchilds90/airy/gosymbol"

// Operator maps an expression in (r, θ) to another one.
type Operator func(gosymbol.Expr) gosymbol.Expr

// Compose returns the operator applying ops right to left, so
// Compose(A, B)(f) = A(B(f)).
func Compose(ops ...Operator) Operator {
	return func(e gosymbol.Expr) gosymbol.Expr {
		for i := len(ops) - 1; i >= 0; i-- {
			e = ops[i](e)
		}
		return e
	}
}

// Polar holds the coordinate symbols r and θ.
type Polar struct {
	R, Theta *gosymbol.Sym
}

// NewPolar uses the symbols r and theta.
func NewPolar() Polar {
	return Polar{R: gosymbol.S("r"), Theta: gosymbol.S("theta")}
}

// Phi is the undefined stress function φ(r, θ).
func (p Polar) Phi() *gosymbol.Function {
	return gosymbol.Fn("phi", p.R.Name(), p.Theta.Name())
}

// Dx is ∂/∂x = cos θ ∂/∂r − (sin θ / r) ∂/∂θ. The result is expanded.
func (p Polar) Dx(f gosymbol.Expr) gosymbol.Expr {
	r, th := p.R.Name(), p.Theta.Name()
	return gosymbol.Expand(gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.CosOf(p.Theta), f.Diff(r)),
		gosymbol.MulOf(gosymbol.N(-1), gosymbol.SinOf(p.Theta), gosymbol.PowOf(p.R, gosymbol.N(-1)), f.Diff(th)),
	))
}

// Dy is ∂/∂y = sin θ ∂/∂r + (cos θ / r) ∂/∂θ. The result is expanded.
func (p Polar) Dy(f gosymbol.Expr) gosymbol.Expr {
	r, th := p.R.Name(), p.Theta.Name()
	return gosymbol.Expand(gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.SinOf(p.Theta), f.Diff(r)),
		gosymbol.MulOf(gosymbol.CosOf(p.Theta), gosymbol.PowOf(p.R, gosymbol.N(-1)), f.Diff(th)),
	))
}

func (p Polar) Dxx(f gosymbol.Expr) gosymbol.Expr { return Compose(p.Dx, p.Dx)(f) }
func (p Polar) Dyy(f gosymbol.Expr) gosymbol.Expr { return Compose(p.Dy, p.Dy)(f) }
func (p Polar) Dxy(f gosymbol.Expr) gosymbol.Expr { return Compose(p.Dx, p.Dy)(f) }
